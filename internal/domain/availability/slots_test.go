package availability

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayPatterns() []models.AvailabilityPattern {
	return []models.AvailabilityPattern{
		{ID: "p2", ExpertID: "e1", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00"},
		{ID: "p1", ExpertID: "e1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: "p3", ExpertID: "e1", DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
	}
}

func TestBuildDaySlots_SortedAndFiltered(t *testing.T) {
	slots := BuildDaySlots(monday, mondayPatterns(), nil, nil)
	if len(slots) != 2 {
		t.Fatalf("expected 2 monday slots, got %d", len(slots))
	}
	if slots[0].ID != "p1" || slots[1].ID != "p2" {
		t.Fatalf("expected slots sorted by start, got %+v", slots)
	}
	for _, s := range slots {
		if !s.Available || s.Status != StatusAvailable || s.Date != "2026-03-02" {
			t.Fatalf("unexpected slot %+v", s)
		}
	}
}

func TestBuildDaySlots_DayBlock(t *testing.T) {
	blocks := []models.SlotBlock{{Date: "2026-03-02", Reason: "tournament"}}
	slots := BuildDaySlots(monday, mondayPatterns(), blocks, nil)
	for _, s := range slots {
		if s.Available || s.Status != StatusBlocked || s.Reason != "tournament" {
			t.Fatalf("expected blocked slot, got %+v", s)
		}
	}
}

func TestBuildDaySlots_SlotBlockAndBooking(t *testing.T) {
	blocks := []models.SlotBlock{{Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00", Reason: "travel"}}
	bookings := []models.Booking{
		{Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00", Status: models.BookingScheduled},
		{Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00", Status: models.BookingCancelled},
	}

	slots := BuildDaySlots(monday, mondayPatterns(), blocks, bookings)
	if slots[0].Status != StatusBooked || slots[0].Available {
		t.Fatalf("expected 09:00 booked, got %+v", slots[0])
	}
	if slots[1].Status != StatusBlocked || slots[1].Reason != "travel" {
		t.Fatalf("expected 10:00 blocked for travel, got %+v", slots[1])
	}
}

func TestBuildMonth(t *testing.T) {
	blocks := []models.SlotBlock{
		{Date: "2026-03-09", Reason: "holiday"},
		{Date: "2026-03-16", StartTime: "09:00", EndTime: "10:00", Reason: "slot only"},
	}
	m := BuildMonth(3, 2026, mondayPatterns(), blocks)

	if len(m) != 31 {
		t.Fatalf("expected 31 days, got %d", len(m))
	}
	if !m["2026-03-02"] || !m["2026-03-03"] {
		t.Fatal("mondays and tuesdays should be available")
	}
	if m["2026-03-04"] {
		t.Fatal("wednesday has no pattern")
	}
	if m["2026-03-09"] {
		t.Fatal("blocked monday should be unavailable")
	}
	if !m["2026-03-16"] {
		t.Fatal("a slot block does not close the day")
	}
}

func TestPatternSetConflicts(t *testing.T) {
	if PatternSetConflicts(mondayPatterns()) {
		t.Fatal("fixture has no conflicts")
	}
	withClash := append(mondayPatterns(), models.AvailabilityPattern{
		ID: "p4", DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30",
	})
	if !PatternSetConflicts(withClash) {
		t.Fatal("expected conflict on monday")
	}
}

func TestPatternMatches(t *testing.T) {
	p := Pattern{ID: "x", DayOfWeek: 3, StartTime: "09:00", EndTime: "10:00"}
	if !p.Matches(3, "09:00", "10:00") {
		t.Fatal("expected match")
	}
	if p.Matches(2, "09:00", "10:00") || p.Matches(3, "09:00", "10:30") {
		t.Fatal("unexpected match")
	}
}
