package availability

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type PatternInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type CreatePatterns struct {
	repo  domain.Repository
	cache domain.MonthCache
	audit Auditor
}

func NewCreatePatterns(
	repo domain.Repository,
	cache domain.MonthCache,
	auditor Auditor,
) *CreatePatterns {
	return &CreatePatterns{
		repo:  repo,
		cache: orNopCache(cache),
		audit: orNopAuditor(auditor),
	}
}

// normalizePattern validates the weekday and bounds and rewrites the times
// in zero padded HH:MM so stored values compare lexically.
func normalizePattern(day int, start, end string) (string, string, error) {
	if !domain.ValidWeekday(day) {
		return "", "", httperr.ErrBusiness(domain.CodeInvalidWeekday)
	}
	iv, err := domain.ParseRange(start, end)
	if err != nil {
		return "", "", err
	}
	return iv.Start.String(), iv.End.String(), nil
}

func (uc *CreatePatterns) Execute(
	ctx context.Context,
	expertID string,
	in []PatternInput,
) ([]domain.Pattern, error) {
	return uc.ExecuteForDate(ctx, expertID, "", in)
}

// ExecuteForDate creates the patterns and, when date is set, opens that day:
// every pattern must fall on date's weekday and a whole-day block on date is
// removed once the patterns are stored.
func (uc *CreatePatterns) ExecuteForDate(
	ctx context.Context,
	expertID string,
	date string,
	in []PatternInput,
) ([]domain.Pattern, error) {

	if len(in) == 0 {
		return nil, httperr.ErrBusiness(domain.CodeEmptyRequest)
	}

	if date != "" {
		day, err := domain.ParseDate(date, nil)
		if err != nil {
			return nil, err
		}
		date = domain.FormatDate(day)
		for _, p := range in {
			if p.DayOfWeek != int(day.Weekday()) {
				return nil, httperr.ErrBusiness(domain.CodeInvalidWeekday)
			}
		}
	}

	rows := make([]models.AvailabilityPattern, 0, len(in))
	for _, p := range in {
		start, end, err := normalizePattern(p.DayOfWeek, p.StartTime, p.EndTime)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.AvailabilityPattern{
			ExpertID:  expertID,
			DayOfWeek: p.DayOfWeek,
			StartTime: start,
			EndTime:   end,
		})
	}

	if err := uc.repo.CreatePatterns(ctx, expertID, rows); err != nil {
		return nil, err
	}

	var lifted int64
	if date != "" {
		n, err := uc.repo.DeleteBlocks(ctx, expertID, date, "", "")
		if err != nil {
			return nil, err
		}
		lifted = n
	}

	uc.cache.InvalidateExpert(ctx, expertID)

	created := domain.PatternsFromModels(rows)
	ids := make([]string, 0, len(created))
	for _, p := range created {
		ids = append(ids, p.ID)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  expertID,
		Action:   audit.ActionPatternsCreated,
		Entity:   "availability_pattern",
		Metadata: map[string]any{"ids": ids},
	})

	if lifted > 0 {
		uc.audit.Dispatch(audit.Event{
			ActorID: expertID,
			Action:  audit.ActionUnblocked,
			Entity:  "slot_block",
			Metadata: map[string]any{
				"date":    date,
				"removed": lifted,
			},
		})
	}

	return created, nil
}
