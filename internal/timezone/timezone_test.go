package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if Location("").String() != DefaultTimezone {
		t.Fatalf("expected %s for empty tz", DefaultTimezone)
	}
	if Location("Mars/Olympus").String() != DefaultTimezone {
		t.Fatalf("expected %s for unknown tz", DefaultTimezone)
	}
	if IsValid("") {
		t.Fatal("empty tz must be invalid")
	}
}

func TestLoadCaches(t *testing.T) {
	first, err := Load("Europe/Lisbon")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := Load("Europe/Lisbon")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached location on the second load")
	}

	if _, err := Load("Mars/Olympus"); err == nil {
		t.Fatal("unknown zone must fail")
	}
}

func TestNowIn(t *testing.T) {
	now := NowIn("Asia/Tokyo")
	if now.Location().String() != "Asia/Tokyo" {
		t.Fatalf("expected Asia/Tokyo, got %s", now.Location())
	}
	if d := time.Since(now); d < 0 || d > time.Minute {
		t.Fatalf("unexpected clock skew %v", d)
	}
}
