package availability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

type GetMonthlyAvailability struct {
	repo  domain.Repository
	cache domain.MonthCache
}

func NewGetMonthlyAvailability(
	repo domain.Repository,
	cache domain.MonthCache,
) *GetMonthlyAvailability {
	return &GetMonthlyAvailability{
		repo:  repo,
		cache: orNopCache(cache),
	}
}

func (uc *GetMonthlyAvailability) Execute(
	ctx context.Context,
	expertID string,
	month int,
	year int,
) (domain.MonthlyAvailability, error) {

	ctx, span := tracer.Start(ctx, "availability.GetMonthly")
	defer span.End()
	span.SetAttributes(
		attribute.String("expert.id", expertID),
		attribute.Int("month", month),
		attribute.Int("year", year),
	)

	if !domain.ValidMonth(month, year) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidMonth)
	}

	if cached, ok := uc.cache.GetMonth(ctx, expertID, month, year); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	patterns, err := uc.repo.ListPatterns(ctx, expertID)
	if err != nil {
		return nil, err
	}

	days := domain.MonthDays(month, year)
	blocks, err := uc.repo.ListBlocks(
		ctx,
		expertID,
		domain.FormatDate(days[0]),
		domain.FormatDate(days[len(days)-1]),
	)
	if err != nil {
		return nil, err
	}

	out := domain.BuildMonth(month, year, patterns, blocks)
	uc.cache.SetMonth(ctx, expertID, month, year, out)

	return out, nil
}
