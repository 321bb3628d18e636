package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

type countingCache struct {
	months      map[string]domain.MonthlyAvailability
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{months: make(map[string]domain.MonthlyAvailability)}
}

func (c *countingCache) key(expertID string, month, year int) string {
	return expertID + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (c *countingCache) GetMonth(_ context.Context, expertID string, month, year int) (domain.MonthlyAvailability, bool) {
	m, ok := c.months[c.key(expertID, month, year)]
	return m, ok
}

func (c *countingCache) SetMonth(_ context.Context, expertID string, month, year int, m domain.MonthlyAvailability) {
	c.months[c.key(expertID, month, year)] = m
}

func (c *countingCache) InvalidateExpert(context.Context, string) {
	c.invalidated++
	c.months = make(map[string]domain.MonthlyAvailability)
}

const expertID = "11111111-1111-1111-1111-111111111111"

func TestCreatePatterns_NormalizesAndAudits(t *testing.T) {
	repo := repository.NewMemoryRepository()
	aud := &recordingAuditor{}
	cache := newCountingCache()
	uc := NewCreatePatterns(repo, cache, aud)

	got, err := uc.Execute(context.Background(), expertID, []PatternInput{
		{DayOfWeek: 1, StartTime: "9:00", EndTime: "9:30"},
		{DayOfWeek: 1, StartTime: "09:30", EndTime: "10:00"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 2 || got[0].StartTime != "09:00" || got[0].ID == "" {
		t.Fatalf("unexpected patterns %+v", got)
	}
	if len(aud.events) != 1 || aud.events[0].Action != audit.ActionPatternsCreated {
		t.Fatalf("expected one create event, got %+v", aud.events)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidated)
	}
}

func TestCreatePatterns_Rejections(t *testing.T) {
	repo := repository.NewMemoryRepository()
	uc := NewCreatePatterns(repo, nil, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, expertID, nil); !httperr.IsBusiness(err, domain.CodeEmptyRequest) {
		t.Fatalf("expected empty_request, got %v", err)
	}
	if _, err := uc.Execute(ctx, expertID, []PatternInput{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}}); !httperr.IsBusiness(err, domain.CodeInvalidWeekday) {
		t.Fatalf("expected invalid_weekday, got %v", err)
	}
	if _, err := uc.Execute(ctx, expertID, []PatternInput{{DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00"}}); !httperr.IsBusiness(err, domain.CodeInvalidRange) {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}

	if _, err := uc.Execute(ctx, expertID, []PatternInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := uc.Execute(ctx, expertID, []PatternInput{{DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30"}})
	if !httperr.IsBusiness(err, domain.CodeTimeConflict) {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	// same hours on another weekday are fine
	if _, err := uc.Execute(ctx, expertID, []PatternInput{{DayOfWeek: 2, StartTime: "09:30", EndTime: "10:30"}}); err != nil {
		t.Fatalf("other weekday: %v", err)
	}

	// another expert is independent
	if _, err := uc.Execute(ctx, "other", []PatternInput{{DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30"}}); err != nil {
		t.Fatalf("other expert: %v", err)
	}
}

func TestCreatePatternsForDate_LiftsDayBlock(t *testing.T) {
	repo := repository.NewMemoryRepository()
	aud := &recordingAuditor{}
	uc := NewCreatePatterns(repo, nil, aud)
	ctx := context.Background()

	// 2026-03-02 is a Monday
	if _, err := NewBlock(repo, nil, nil).Execute(ctx, expertID, BlockInput{Date: "2026-03-02", Reason: "tournament"}); err != nil {
		t.Fatalf("block day: %v", err)
	}
	if _, err := NewBlock(repo, nil, nil).Execute(ctx, expertID, BlockInput{Date: "2026-03-09", Reason: "travel"}); err != nil {
		t.Fatalf("block other day: %v", err)
	}

	_, err := uc.ExecuteForDate(ctx, expertID, "2026-03-02", []PatternInput{{DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"}})
	if !httperr.IsBusiness(err, domain.CodeInvalidWeekday) {
		t.Fatalf("pattern off the date's weekday: expected invalid_weekday, got %v", err)
	}

	if _, err := uc.ExecuteForDate(ctx, expertID, "2026-03-02", []PatternInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}); err != nil {
		t.Fatalf("ExecuteForDate: %v", err)
	}

	slots, err := NewGetDaySlots(repo).Execute(ctx, expertID, "2026-03-02")
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}
	if len(slots) != 1 || !slots[0].Available {
		t.Fatalf("expected one open slot, got %+v", slots)
	}

	m, err := NewGetMonthlyAvailability(repo, nil).Execute(ctx, expertID, 3, 2026)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if !m["2026-03-02"] || m["2026-03-09"] {
		t.Fatalf("only the named day opens, got 02=%v 09=%v", m["2026-03-02"], m["2026-03-09"])
	}

	if len(aud.events) != 2 || aud.events[1].Action != audit.ActionUnblocked {
		t.Fatalf("expected create and unblock events, got %+v", aud.events)
	}
}

func TestUpdatePatterns_ExcludesSelf(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	created, err := NewCreatePatterns(repo, nil, nil).Execute(ctx, expertID, []PatternInput{
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 3, StartTime: "11:00", EndTime: "12:00"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := NewUpdatePatterns(repo, nil, nil)
	if _, err := uc.Execute(ctx, expertID, []PatternUpdate{
		{ID: created[0].ID, DayOfWeek: 3, StartTime: "09:30", EndTime: "10:30"},
	}); err != nil {
		t.Fatalf("shifting within own window should succeed: %v", err)
	}

	_, err = uc.Execute(ctx, expertID, []PatternUpdate{
		{ID: created[0].ID, DayOfWeek: 3, StartTime: "10:30", EndTime: "11:30"},
	})
	if !httperr.IsBusiness(err, domain.CodeTimeConflict) {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	_, err = uc.Execute(ctx, "someone-else", []PatternUpdate{
		{ID: created[0].ID, DayOfWeek: 3, StartTime: "07:00", EndTime: "08:00"},
	})
	if !httperr.IsBusiness(err, domain.CodePatternNotFound) {
		t.Fatalf("expected pattern_not_found, got %v", err)
	}

	patterns, _ := NewListPatterns(repo).Execute(ctx, expertID)
	if patterns[0].StartTime != "09:30" {
		t.Fatalf("failed updates must not leak, got %+v", patterns)
	}
}

func TestDeletePatterns(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	created, _ := NewCreatePatterns(repo, nil, nil).Execute(ctx, expertID, []PatternInput{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "10:00"},
	})

	uc := NewDeletePatterns(repo, nil, nil)
	if _, err := uc.Execute(ctx, "intruder", []string{created[0].ID}); !httperr.IsBusiness(err, domain.CodePatternNotFound) {
		t.Fatalf("expected pattern_not_found, got %v", err)
	}
	n, err := uc.Execute(ctx, expertID, []string{created[0].ID})
	if err != nil || n != 1 {
		t.Fatalf("expected one deletion, got %d, %v", n, err)
	}
}

func TestMonthlyAvailability_UsesCacheAndBlocks(t *testing.T) {
	repo := repository.NewMemoryRepository()
	cache := newCountingCache()
	ctx := context.Background()

	// Mondays only. 2026-03-02 is a Monday.
	if _, err := NewCreatePatterns(repo, cache, nil).Execute(ctx, expertID, []PatternInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	monthly := NewGetMonthlyAvailability(repo, cache)
	m, err := monthly.Execute(ctx, expertID, 3, 2026)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !m["2026-03-02"] || m["2026-03-03"] {
		t.Fatalf("unexpected month %v", m)
	}
	if _, ok := cache.GetMonth(ctx, expertID, 3, 2026); !ok {
		t.Fatal("expected month to be cached")
	}

	if _, err := NewBlock(repo, cache, nil).Execute(ctx, expertID, BlockInput{Date: "2026-03-02", Reason: "injury"}); err != nil {
		t.Fatalf("block: %v", err)
	}
	m, _ = monthly.Execute(ctx, expertID, 3, 2026)
	if m["2026-03-02"] {
		t.Fatal("blocked day must be unavailable after invalidation")
	}

	if _, err := monthly.Execute(ctx, expertID, 13, 2026); !httperr.IsBusiness(err, domain.CodeInvalidMonth) {
		t.Fatalf("expected invalid_month, got %v", err)
	}
}

func TestBlock_Validation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	uc := NewBlock(repo, nil, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, expertID, BlockInput{Date: "2026-03-02", Reason: "   "}); !httperr.IsBusiness(err, domain.CodeReasonRequired) {
		t.Fatalf("expected reason_required, got %v", err)
	}
	if _, err := uc.Execute(ctx, expertID, BlockInput{Date: "2026-03-02", Reason: "x", StartTime: "09:00"}); !httperr.IsBusiness(err, domain.CodeInvalidRange) {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}
	if _, err := uc.Execute(ctx, expertID, BlockInput{Date: "02/03/2026", Reason: "x"}); !httperr.IsBusiness(err, domain.CodeInvalidDate) {
		t.Fatalf("expected invalid_date, got %v", err)
	}

	blocks, _ := repo.ListBlocks(ctx, expertID, "2026-01-01", "2026-12-31")
	if len(blocks) != 0 {
		t.Fatalf("rejected blocks must not be stored, got %d", len(blocks))
	}
}

func TestBlockSlotAndUnblock(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	aud := &recordingAuditor{}

	_, _ = NewCreatePatterns(repo, nil, nil).Execute(ctx, expertID, []PatternInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00"},
	})

	if _, err := NewBlock(repo, nil, aud).Execute(ctx, expertID, BlockInput{
		Date: "2026-03-02", Reason: "physio", StartTime: "10:00", EndTime: "11:00",
	}); err != nil {
		t.Fatalf("block slot: %v", err)
	}

	slots, err := NewGetDaySlots(repo).Execute(ctx, expertID, "2026-03-02")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if !slots[0].Available || slots[1].Available || slots[1].Reason != "physio" {
		t.Fatalf("unexpected slots %+v", slots)
	}

	unblock := NewUnblock(repo, nil, aud)
	n, err := unblock.Execute(ctx, expertID, UnblockInput{Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00"})
	if err != nil || n != 1 {
		t.Fatalf("expected one block removed, got %d, %v", n, err)
	}
	n, err = unblock.Execute(ctx, expertID, UnblockInput{Date: "2026-03-02"})
	if err != nil || n != 0 {
		t.Fatalf("unblocking an open day is a no-op, got %d, %v", n, err)
	}
	if len(aud.events) != 2 {
		t.Fatalf("expected block and unblock events, got %d", len(aud.events))
	}
}

func TestBookSlot(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	expert := &models.User{ID: expertID, Email: "coach@example.com", Role: models.RoleExpert}
	if err := repo.CreateUser(ctx, expert); err != nil {
		t.Fatalf("create expert: %v", err)
	}

	future := time.Now().UTC().AddDate(0, 0, 7)
	_, _ = NewCreatePatterns(repo, nil, nil).Execute(ctx, expertID, []PatternInput{
		{DayOfWeek: int(future.Weekday()), StartTime: "09:00", EndTime: "10:00"},
	})

	uc := NewBookSlot(repo, nil)
	in := BookingInput{
		ExpertID:  expertID,
		Date:      future.Format("2006-01-02"),
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	booking, err := uc.Execute(ctx, "player-1", in)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.Status != models.BookingScheduled {
		t.Fatalf("unexpected status %s", booking.Status)
	}

	if _, err := uc.Execute(ctx, "player-2", in); !httperr.IsBusiness(err, domain.CodeSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}

	slots, _ := NewGetDaySlots(repo).Execute(ctx, expertID, in.Date)
	if len(slots) != 1 || slots[0].Status != domain.StatusBooked {
		t.Fatalf("expected booked slot, got %+v", slots)
	}

	past := in
	past.Date = time.Now().UTC().AddDate(0, 0, -7).Format("2006-01-02")
	if _, err := uc.Execute(ctx, "player-1", past); !httperr.IsBusiness(err, CodeSlotInPast) {
		t.Fatalf("expected slot_in_past, got %v", err)
	}

	missing := in
	missing.ExpertID = "nobody"
	if _, err := uc.Execute(ctx, "player-1", missing); !httperr.IsBusiness(err, CodeExpertNotFound) {
		t.Fatalf("expected expert_not_found, got %v", err)
	}
}
