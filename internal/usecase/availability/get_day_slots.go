package availability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

type GetDaySlots struct {
	repo domain.Repository
}

func NewGetDaySlots(repo domain.Repository) *GetDaySlots {
	return &GetDaySlots{repo: repo}
}

func (uc *GetDaySlots) Execute(
	ctx context.Context,
	expertID string,
	date string,
) ([]domain.TimeSlot, error) {

	ctx, span := tracer.Start(ctx, "availability.GetDaySlots")
	defer span.End()
	span.SetAttributes(attribute.String("expert.id", expertID), attribute.String("date", date))

	day, err := domain.ParseDate(date, nil)
	if err != nil {
		return nil, err
	}
	date = domain.FormatDate(day)

	patterns, err := uc.repo.ListPatterns(ctx, expertID)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocks(ctx, expertID, date, date)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookings(ctx, expertID, date)
	if err != nil {
		return nil, err
	}

	return domain.BuildDaySlots(day, patterns, blocks, bookings), nil
}
