package availability

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

type DeletePatterns struct {
	repo  domain.Repository
	cache domain.MonthCache
	audit Auditor
}

func NewDeletePatterns(
	repo domain.Repository,
	cache domain.MonthCache,
	auditor Auditor,
) *DeletePatterns {
	return &DeletePatterns{
		repo:  repo,
		cache: orNopCache(cache),
		audit: orNopAuditor(auditor),
	}
}

// Execute deletes the expert's patterns with the given ids. Ids the expert
// does not own are ignored; deleting nothing at all is an error.
func (uc *DeletePatterns) Execute(
	ctx context.Context,
	expertID string,
	ids []string,
) (int64, error) {

	if len(ids) == 0 {
		return 0, httperr.ErrBusiness(domain.CodeEmptyRequest)
	}

	n, err := uc.repo.DeletePatterns(ctx, expertID, ids)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, httperr.ErrBusiness(domain.CodePatternNotFound)
	}

	uc.cache.InvalidateExpert(ctx, expertID)

	uc.audit.Dispatch(audit.Event{
		ActorID:  expertID,
		Action:   audit.ActionPatternsDeleted,
		Entity:   "availability_pattern",
		Metadata: map[string]any{"ids": ids, "deleted": n},
	})

	return n, nil
}
