package availability

import "testing"

func mustRange(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseRange(start, end)
	if err != nil {
		t.Fatalf("ParseRange(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestOverlaps_AdjacentIsFree(t *testing.T) {
	existing := []Interval{mustRange(t, "09:00", "10:00")}

	if Overlaps(mustRange(t, "10:00", "10:30"), existing, "") {
		t.Fatal("10:00-10:30 should not overlap 09:00-10:00")
	}
	if Overlaps(mustRange(t, "08:00", "09:00"), existing, "") {
		t.Fatal("08:00-09:00 should not overlap 09:00-10:00")
	}
}

func TestOverlaps_PartialAndContaining(t *testing.T) {
	existing := []Interval{mustRange(t, "09:00", "10:00")}
	if !Overlaps(mustRange(t, "09:30", "10:30"), existing, "") {
		t.Fatal("09:30-10:30 should overlap 09:00-10:00")
	}

	inner := []Interval{mustRange(t, "09:30", "10:00")}
	if !Overlaps(mustRange(t, "09:00", "11:00"), inner, "") {
		t.Fatal("09:00-11:00 should overlap 09:30-10:00")
	}
	if !Overlaps(mustRange(t, "09:40", "09:50"), inner, "") {
		t.Fatal("09:40-09:50 should overlap 09:30-10:00")
	}
}

func TestOverlaps_ExcludesEditedSlot(t *testing.T) {
	a := mustRange(t, "09:00", "10:00")
	a.ID = "a"
	b := mustRange(t, "11:00", "12:00")
	b.ID = "b"

	candidate := mustRange(t, "09:15", "10:15")
	if Overlaps(candidate, []Interval{a, b}, "a") {
		t.Fatal("edited slot must be ignored")
	}
	if !Overlaps(candidate, []Interval{a, b}, "b") {
		t.Fatal("other slots must still be checked")
	}
}

func TestSlotIntervals_SkipsInvalid(t *testing.T) {
	slots := []TimeSlot{
		{ID: "1", StartTime: "09:00", EndTime: "09:30"},
		{ID: "2", StartTime: "bad", EndTime: "09:30"},
		{ID: "3", StartTime: "10:00", EndTime: "09:00"},
	}
	ivs := SlotIntervals(slots)
	if len(ivs) != 1 || ivs[0].ID != "1" {
		t.Fatalf("expected only slot 1, got %+v", ivs)
	}
}

func TestAnyOverlap(t *testing.T) {
	free := []Interval{
		mustRange(t, "09:00", "09:30"),
		mustRange(t, "09:30", "10:00"),
		mustRange(t, "12:00", "13:00"),
	}
	if AnyOverlap(free) {
		t.Fatal("back to back intervals should not conflict")
	}
	if !AnyOverlap(append(free, mustRange(t, "12:30", "12:45"))) {
		t.Fatal("expected conflict with 12:30-12:45")
	}
}
