package availability

import (
	"go.opentelemetry.io/otel"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/cache"
)

var tracer = otel.Tracer("expert-scheduler/usecase/availability")

// Auditor receives audit events; *audit.Dispatcher satisfies it.
type Auditor interface {
	Dispatch(ev audit.Event)
}

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}

func orNopAuditor(a Auditor) Auditor {
	if a == nil {
		return nopAuditor{}
	}
	return a
}

func orNopCache(c domain.MonthCache) domain.MonthCache {
	if c == nil {
		return cache.NopMonthCache{}
	}
	return c
}
