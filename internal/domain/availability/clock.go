package availability

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// Clock is a wall-clock time expressed in minutes after midnight.
type Clock int

func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, httperr.ErrBusiness(CodeInvalidTime)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On anchors the clock on the calendar day of d, in d's location.
func (c Clock) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), int(c)/60, int(c)%60, 0, 0, d.Location())
}

// ParseRange parses a start/end pair and requires start < end.
func ParseRange(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, httperr.ErrBusiness(CodeInvalidRange)
	}
	return Interval{Start: s, End: e}, nil
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(CodeInvalidDate)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// MonthDays lists every calendar day of the month, at midnight UTC.
func MonthDays(month, year int) []time.Time {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekdayDefaults approximates a month with no server data: weekdays are
// available, weekends are not.
func WeekdayDefaults(month, year int) map[string]bool {
	out := make(map[string]bool, 31)
	for _, d := range MonthDays(month, year) {
		wd := d.Weekday()
		out[FormatDate(d)] = wd != time.Saturday && wd != time.Sunday
	}
	return out
}

func ValidMonth(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}
