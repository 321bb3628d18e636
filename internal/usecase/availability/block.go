package availability

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// BlockInput blocks a whole day when StartTime and EndTime are empty, or the
// single slot with exactly those bounds otherwise.
type BlockInput struct {
	Date      string
	Reason    string
	StartTime string
	EndTime   string
}

type UnblockInput struct {
	Date      string
	StartTime string
	EndTime   string
}

// normalizeTarget validates the date and the optional slot bounds.
func normalizeTarget(date, start, end string) (string, string, string, error) {
	day, err := domain.ParseDate(date, nil)
	if err != nil {
		return "", "", "", err
	}

	if start == "" && end == "" {
		return domain.FormatDate(day), "", "", nil
	}
	if start == "" || end == "" {
		return "", "", "", httperr.ErrBusiness(domain.CodeInvalidRange)
	}

	iv, err := domain.ParseRange(start, end)
	if err != nil {
		return "", "", "", err
	}
	return domain.FormatDate(day), iv.Start.String(), iv.End.String(), nil
}

type Block struct {
	repo  domain.Repository
	cache domain.MonthCache
	audit Auditor
}

func NewBlock(
	repo domain.Repository,
	cache domain.MonthCache,
	auditor Auditor,
) *Block {
	return &Block{
		repo:  repo,
		cache: orNopCache(cache),
		audit: orNopAuditor(auditor),
	}
}

func (uc *Block) Execute(
	ctx context.Context,
	expertID string,
	in BlockInput,
) (*models.SlotBlock, error) {

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, httperr.ErrBusiness(domain.CodeReasonRequired)
	}

	date, start, end, err := normalizeTarget(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	block := &models.SlotBlock{
		ExpertID:  expertID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    reason,
	}

	if err := uc.repo.CreateBlock(ctx, block); err != nil {
		return nil, err
	}

	uc.cache.InvalidateExpert(ctx, expertID)

	uc.audit.Dispatch(audit.Event{
		ActorID:  expertID,
		Action:   audit.ActionBlocked,
		Entity:   "slot_block",
		EntityID: block.ID,
		Metadata: map[string]any{
			"date":   date,
			"start":  start,
			"end":    end,
			"reason": reason,
		},
	})

	return block, nil
}

type Unblock struct {
	repo  domain.Repository
	cache domain.MonthCache
	audit Auditor
}

func NewUnblock(
	repo domain.Repository,
	cache domain.MonthCache,
	auditor Auditor,
) *Unblock {
	return &Unblock{
		repo:  repo,
		cache: orNopCache(cache),
		audit: orNopAuditor(auditor),
	}
}

// Execute removes matching blocks. Unblocking something that is not blocked
// succeeds and reports zero removals.
func (uc *Unblock) Execute(
	ctx context.Context,
	expertID string,
	in UnblockInput,
) (int64, error) {

	date, start, end, err := normalizeTarget(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return 0, err
	}

	n, err := uc.repo.DeleteBlocks(ctx, expertID, date, start, end)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		uc.cache.InvalidateExpert(ctx, expertID)
		uc.audit.Dispatch(audit.Event{
			ActorID: expertID,
			Action:  audit.ActionUnblocked,
			Entity:  "slot_block",
			Metadata: map[string]any{
				"date":    date,
				"start":   start,
				"end":     end,
				"removed": n,
			},
		})
	}

	return n, nil
}
