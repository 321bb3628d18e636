package availability

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

func PatternFromModel(m models.AvailabilityPattern) Pattern {
	return Pattern{
		ID:        m.ID,
		DayOfWeek: m.DayOfWeek,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

func PatternsFromModels(ms []models.AvailabilityPattern) []Pattern {
	out := make([]Pattern, 0, len(ms))
	for _, m := range ms {
		out = append(out, PatternFromModel(m))
	}
	return out
}

// BuildDaySlots materialises the patterns of date's weekday into slots.
// A whole-day block or a block with the slot's exact bounds makes the slot
// blocked; an overlapping scheduled booking makes it booked.
func BuildDaySlots(
	date time.Time,
	patterns []models.AvailabilityPattern,
	blocks []models.SlotBlock,
	bookings []models.Booking,
) []TimeSlot {

	dateStr := FormatDate(date)
	weekday := int(date.Weekday())

	var dayBlock *models.SlotBlock
	for i := range blocks {
		if blocks[i].Date == dateStr && blocks[i].FullDay() {
			dayBlock = &blocks[i]
			break
		}
	}

	var booked []Interval
	for _, b := range bookings {
		if b.Date != dateStr || b.Status != models.BookingScheduled {
			continue
		}
		if iv, err := ParseRange(b.StartTime, b.EndTime); err == nil {
			booked = append(booked, iv)
		}
	}

	slots := make([]TimeSlot, 0)
	for _, p := range patterns {
		if p.DayOfWeek != weekday {
			continue
		}
		iv, err := ParseRange(p.StartTime, p.EndTime)
		if err != nil {
			continue
		}

		slot := TimeSlot{
			ID:        p.ID,
			Date:      dateStr,
			StartTime: iv.Start.String(),
			EndTime:   iv.End.String(),
			Available: true,
			Status:    StatusAvailable,
		}

		blk := slotBlock(blocks, dateStr, iv)

		switch {
		case dayBlock != nil:
			slot.Available = false
			slot.Status = StatusBlocked
			slot.Reason = dayBlock.Reason
		case blk != nil:
			slot.Available = false
			slot.Status = StatusBlocked
			slot.Reason = blk.Reason
		case Overlaps(iv, booked, ""):
			slot.Available = false
			slot.Status = StatusBooked
		}

		slots = append(slots, slot)
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})

	return slots
}

func slotBlock(blocks []models.SlotBlock, date string, iv Interval) *models.SlotBlock {
	for i := range blocks {
		b := &blocks[i]
		if b.Date != date || b.FullDay() {
			continue
		}
		biv, err := ParseRange(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		if biv.Start == iv.Start && biv.End == iv.End {
			return b
		}
	}
	return nil
}

// BuildMonth marks a day available when the expert has a pattern on its
// weekday and the day is not blocked as a whole.
func BuildMonth(
	month, year int,
	patterns []models.AvailabilityPattern,
	blocks []models.SlotBlock,
) MonthlyAvailability {

	var weekdays [7]bool
	for _, p := range patterns {
		if ValidWeekday(p.DayOfWeek) {
			weekdays[p.DayOfWeek] = true
		}
	}

	blocked := make(map[string]bool)
	for _, b := range blocks {
		if b.FullDay() {
			blocked[b.Date] = true
		}
	}

	out := make(MonthlyAvailability, 31)
	for _, d := range MonthDays(month, year) {
		key := FormatDate(d)
		out[key] = weekdays[int(d.Weekday())] && !blocked[key]
	}
	return out
}

// AnyOverlap reports whether any two intervals of the set intersect.
func AnyOverlap(ivs []Interval) bool {
	for i := range ivs {
		if Overlaps(ivs[i], ivs[i+1:], "") {
			return true
		}
	}
	return false
}

// PatternSetConflicts checks a full set of an expert's patterns for overlap
// within each weekday.
func PatternSetConflicts(patterns []models.AvailabilityPattern) bool {
	byDay := make(map[int][]Interval)
	for _, p := range patterns {
		iv, err := ParseRange(p.StartTime, p.EndTime)
		if err != nil {
			continue
		}
		iv.ID = p.ID
		byDay[p.DayOfWeek] = append(byDay[p.DayOfWeek], iv)
	}
	for _, ivs := range byDay {
		if AnyOverlap(ivs) {
			return true
		}
	}
	return false
}
