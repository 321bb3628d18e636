package availability

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:05")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if int(c) != 9*60+5 {
		t.Fatalf("expected 545 minutes, got %d", c)
	}
	if c.String() != "09:05" {
		t.Fatalf("expected 09:05, got %s", c.String())
	}

	if _, err := ParseClock("25:00"); !httperr.IsBusiness(err, CodeInvalidTime) {
		t.Fatalf("expected invalid_time, got %v", err)
	}
}

func TestParseRange_RequiresOrder(t *testing.T) {
	if _, err := ParseRange("10:00", "10:00"); !httperr.IsBusiness(err, CodeInvalidRange) {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}
	if _, err := ParseRange("11:00", "10:00"); !httperr.IsBusiness(err, CodeInvalidRange) {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}
}

func TestClockOn(t *testing.T) {
	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := Clock(14*60 + 30).On(d)
	want := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestWeekdayDefaults(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days.
	m := WeekdayDefaults(2, 2026)
	if len(m) != 28 {
		t.Fatalf("expected 28 days, got %d", len(m))
	}
	if m["2026-02-01"] {
		t.Fatal("Sunday should be unavailable")
	}
	if !m["2026-02-02"] {
		t.Fatal("Monday should be available")
	}
	if m["2026-02-07"] {
		t.Fatal("Saturday should be unavailable")
	}
}

func TestValidMonth(t *testing.T) {
	if ValidMonth(13, 2026) || ValidMonth(0, 2026) || ValidMonth(5, 1999) {
		t.Fatal("expected out of range values to be rejected")
	}
	if !ValidMonth(12, 2026) {
		t.Fatal("expected 12/2026 to be valid")
	}
}
