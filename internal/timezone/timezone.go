package timezone

import (
	"sync"
	"time"
)

// DefaultTimezone is used for users without a stored zone.
const DefaultTimezone = "UTC"

var cache sync.Map // name -> *time.Location

// Load resolves an IANA zone name, caching successful lookups.
func Load(name string) (*time.Location, error) {
	if loc, ok := cache.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	cache.Store(name, loc)
	return loc, nil
}

// IsValid reports whether name is a loadable zone. The empty name, which
// time.LoadLocation reads as UTC, is rejected.
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	_, err := Load(name)
	return err == nil
}

// Location resolves name, falling back to UTC.
func Location(name string) *time.Location {
	if name != "" {
		if loc, err := Load(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// NowIn is the current time in the named zone.
func NowIn(name string) time.Time {
	return time.Now().In(Location(name))
}
