package cache

import (
	"context"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

// NopMonthCache is used when no Redis address is configured.
type NopMonthCache struct{}

func (NopMonthCache) GetMonth(context.Context, string, int, int) (domain.MonthlyAvailability, bool) {
	return nil, false
}

func (NopMonthCache) SetMonth(context.Context, string, int, int, domain.MonthlyAvailability) {}

func (NopMonthCache) InvalidateExpert(context.Context, string) {}

var _ domain.MonthCache = NopMonthCache{}
