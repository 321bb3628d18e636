package availability

import (
	"context"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

type ListPatterns struct {
	repo domain.Repository
}

func NewListPatterns(repo domain.Repository) *ListPatterns {
	return &ListPatterns{repo: repo}
}

func (uc *ListPatterns) Execute(
	ctx context.Context,
	expertID string,
) ([]domain.Pattern, error) {

	patterns, err := uc.repo.ListPatterns(ctx, expertID)
	if err != nil {
		return nil, err
	}
	return domain.PatternsFromModels(patterns), nil
}
