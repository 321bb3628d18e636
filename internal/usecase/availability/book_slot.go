package availability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

const (
	CodeExpertNotFound = "expert_not_found"
	CodeSlotInPast     = "slot_in_past"
)

type BookingInput struct {
	ExpertID  string
	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

type BookSlot struct {
	repo  domain.Repository
	slots *GetDaySlots
	audit Auditor
}

func NewBookSlot(repo domain.Repository, auditor Auditor) *BookSlot {
	return &BookSlot{
		repo:  repo,
		slots: NewGetDaySlots(repo),
		audit: orNopAuditor(auditor),
	}
}

func (uc *BookSlot) Execute(
	ctx context.Context,
	playerID string,
	in BookingInput,
) (booking *models.Booking, err error) {

	ctx, span := tracer.Start(ctx, "availability.BookSlot")
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("expert.id", in.ExpertID), attribute.String("date", in.Date))

	// --------------------------------------------------
	// Expert and their timezone
	// --------------------------------------------------
	expert, err := uc.repo.GetUser(ctx, in.ExpertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(CodeExpertNotFound)
		}
		return nil, err
	}
	if expert.Role != models.RoleExpert {
		return nil, httperr.ErrBusiness(CodeExpertNotFound)
	}

	loc := timezone.Location(expert.Timezone)

	day, err := domain.ParseDate(in.Date, loc)
	if err != nil {
		return nil, err
	}
	iv, err := domain.ParseRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	if iv.Start.On(day).Before(timezone.NowIn(expert.Timezone)) {
		return nil, httperr.ErrBusiness(CodeSlotInPast)
	}

	// --------------------------------------------------
	// Slot must exist and be open
	// --------------------------------------------------
	slots, err := uc.slots.Execute(ctx, expert.ID, domain.FormatDate(day))
	if err != nil {
		return nil, err
	}

	open := false
	for _, s := range slots {
		siv, err := s.Interval()
		if err != nil {
			continue
		}
		if s.Available && siv.Start == iv.Start && siv.End == iv.End {
			open = true
			break
		}
	}
	if !open {
		return nil, httperr.ErrBusiness(domain.CodeSlotUnavailable)
	}

	booking = &models.Booking{
		ExpertID:  expert.ID,
		PlayerID:  playerID,
		Date:      domain.FormatDate(day),
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
		Status:    models.BookingScheduled,
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  playerID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: booking.ID,
		Metadata: map[string]any{
			"expert_id": expert.ID,
			"date":      booking.Date,
			"start":     booking.StartTime,
		},
	})

	return booking, nil
}
