package availability

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type PatternUpdate struct {
	ID        string
	DayOfWeek int
	StartTime string
	EndTime   string
}

type UpdatePatterns struct {
	repo  domain.Repository
	cache domain.MonthCache
	audit Auditor
}

func NewUpdatePatterns(
	repo domain.Repository,
	cache domain.MonthCache,
	auditor Auditor,
) *UpdatePatterns {
	return &UpdatePatterns{
		repo:  repo,
		cache: orNopCache(cache),
		audit: orNopAuditor(auditor),
	}
}

func (uc *UpdatePatterns) Execute(
	ctx context.Context,
	expertID string,
	in []PatternUpdate,
) ([]domain.Pattern, error) {

	if len(in) == 0 {
		return nil, httperr.ErrBusiness(domain.CodeEmptyRequest)
	}

	rows := make([]models.AvailabilityPattern, 0, len(in))
	for _, p := range in {
		if p.ID == "" {
			return nil, httperr.ErrBusiness(domain.CodePatternNotFound)
		}
		start, end, err := normalizePattern(p.DayOfWeek, p.StartTime, p.EndTime)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.AvailabilityPattern{
			ID:        p.ID,
			ExpertID:  expertID,
			DayOfWeek: p.DayOfWeek,
			StartTime: start,
			EndTime:   end,
		})
	}

	if err := uc.repo.UpdatePatterns(ctx, expertID, rows); err != nil {
		return nil, err
	}

	uc.cache.InvalidateExpert(ctx, expertID)

	updated := domain.PatternsFromModels(rows)
	for _, p := range updated {
		uc.audit.Dispatch(audit.Event{
			ActorID:  expertID,
			Action:   audit.ActionPatternsUpdated,
			Entity:   "availability_pattern",
			EntityID: p.ID,
			Metadata: p,
		})
	}

	return updated, nil
}
