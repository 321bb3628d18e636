package availability

// SlotStatus is the single source for slot state naming.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusBlocked   SlotStatus = "blocked"
)

type statusDisplay struct {
	Label string
	Color string
}

var statusTable = map[SlotStatus]statusDisplay{
	StatusAvailable: {Label: "Available", Color: "green"},
	StatusBooked:    {Label: "Booked", Color: "blue"},
	StatusBlocked:   {Label: "Blocked", Color: "red"},
}

func (s SlotStatus) Label() string {
	if d, ok := statusTable[s]; ok {
		return d.Label
	}
	return "Unknown"
}

func (s SlotStatus) Color() string {
	if d, ok := statusTable[s]; ok {
		return d.Color
	}
	return "gray"
}

func (s SlotStatus) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// StatusOf derives a status for slots that arrive without one. An unavailable
// slot with a reason was blocked, without one it was booked.
func StatusOf(available bool, reason string) SlotStatus {
	switch {
	case available:
		return StatusAvailable
	case reason != "":
		return StatusBlocked
	default:
		return StatusBooked
	}
}

// Normalize fills Status when the backend omitted it.
func (s TimeSlot) Normalize() TimeSlot {
	if !s.Status.Valid() {
		s.Status = StatusOf(s.Available, s.Reason)
	}
	return s
}
