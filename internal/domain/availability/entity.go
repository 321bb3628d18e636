package availability

// Pattern is a recurring weekly availability window. DayOfWeek follows
// time.Weekday (Sunday = 0).
type Pattern struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (p Pattern) Interval() (Interval, error) {
	iv, err := ParseRange(p.StartTime, p.EndTime)
	if err != nil {
		return Interval{}, err
	}
	iv.ID = p.ID
	return iv, nil
}

// Matches reports whether the pattern covers exactly the given weekday and
// bounds.
func (p Pattern) Matches(weekday int, start, end string) bool {
	if p.DayOfWeek != weekday {
		return false
	}
	iv, err := p.Interval()
	if err != nil {
		return false
	}
	want, err := ParseRange(start, end)
	if err != nil {
		return false
	}
	return iv.Start == want.Start && iv.End == want.End
}

// TimeSlot is a dated interval. Server generated slots carry the id of the
// pattern that produced them.
type TimeSlot struct {
	ID        string     `json:"id,omitempty"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
	Status    SlotStatus `json:"status,omitempty"`
}

func (s TimeSlot) Interval() (Interval, error) {
	iv, err := ParseRange(s.StartTime, s.EndTime)
	if err != nil {
		return Interval{}, err
	}
	iv.ID = s.ID
	return iv, nil
}

// MonthlyAvailability maps YYYY-MM-DD to whether the expert works that day.
type MonthlyAvailability map[string]bool

func ValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}
