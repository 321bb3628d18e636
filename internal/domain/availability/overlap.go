package availability

// Interval is a half-open [Start, End) range on a single day. ID names the
// slot or pattern the range belongs to and may be empty.
type Interval struct {
	ID    string
	Start Clock
	End   Clock
}

func (i Interval) Valid() bool {
	return i.Start < i.End
}

// Intersects reports whether the two ranges share at least one minute.
// Touching ranges (a.End == b.Start) do not intersect.
func (i Interval) Intersects(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

// Overlaps reports whether candidate intersects any of existing, skipping the
// entry whose ID equals excludeID. It stops at the first hit.
func Overlaps(candidate Interval, existing []Interval, excludeID string) bool {
	for _, e := range existing {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if candidate.Intersects(e) {
			return true
		}
	}
	return false
}

// SlotIntervals converts slots to intervals. Slots with unparsable times are
// left out.
func SlotIntervals(slots []TimeSlot) []Interval {
	out := make([]Interval, 0, len(slots))
	for _, s := range slots {
		iv, err := s.Interval()
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// PatternIntervals returns the intervals of the patterns on weekday.
func PatternIntervals(patterns []Pattern, weekday int) []Interval {
	out := make([]Interval, 0, len(patterns))
	for _, p := range patterns {
		if p.DayOfWeek != weekday {
			continue
		}
		iv, err := p.Interval()
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}
