package client

import (
	"context"
	"strconv"
	"sync"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

// fakeBackend derives slots and months from its patterns the way the server
// does, and counts every call.
type fakeBackend struct {
	mu sync.Mutex

	patterns  []domain.Pattern
	dayBlocks map[string]string
	booked    map[string]bool // date+start
	nextID    int

	calls map[string]int
	fail  map[string]error

	// gates holds DaySlots back for a date once; started is signalled when
	// a gated call has taken its snapshot.
	gates   map[string]chan struct{}
	started chan string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		dayBlocks: map[string]string{},
		booked:    map[string]bool{},
		calls:     map[string]int{},
		fail:      map[string]error{},
		gates:     map[string]chan struct{}{},
		started:   make(chan string, 4),
	}
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) enter(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.fail[name]
}

func (f *fakeBackend) addPattern(p domain.Pattern) domain.Pattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		f.nextID++
		p.ID = "p" + strconv.Itoa(f.nextID)
	}
	f.patterns = append(f.patterns, p)
	return p
}

func (f *fakeBackend) Patterns(context.Context, string) ([]domain.Pattern, error) {
	if err := f.enter("Patterns"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Pattern(nil), f.patterns...), nil
}

func (f *fakeBackend) Monthly(_ context.Context, _ string, month, year int) (domain.MonthlyAvailability, error) {
	if err := f.enter("Monthly"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := domain.MonthlyAvailability{}
	for _, d := range domain.MonthDays(month, year) {
		date := domain.FormatDate(d)
		_, blocked := f.dayBlocks[date]
		out[date] = !blocked && len(domain.PatternIntervals(f.patterns, int(d.Weekday()))) > 0
	}
	return out, nil
}

func (f *fakeBackend) DaySlots(_ context.Context, _ string, date string) ([]domain.TimeSlot, error) {
	if err := f.enter("DaySlots"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	d, err := domain.ParseDate(date, nil)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var out []domain.TimeSlot
	for _, p := range f.patterns {
		if p.DayOfWeek != int(d.Weekday()) {
			continue
		}
		slot := domain.TimeSlot{ID: p.ID, Date: date, StartTime: p.StartTime, EndTime: p.EndTime, Available: true}
		if reason, ok := f.dayBlocks[date]; ok {
			slot.Available, slot.Reason = false, reason
		} else if f.booked[date+p.StartTime] {
			slot.Available = false
		}
		out = append(out, slot.Normalize())
	}
	gate, gated := f.gates[date]
	delete(f.gates, date)
	f.mu.Unlock()

	if gated {
		f.started <- date
		<-gate
	}
	return out, nil
}

func (f *fakeBackend) CreatePatterns(_ context.Context, date string, patterns []domain.Pattern) ([]domain.Pattern, error) {
	if err := f.enter("CreatePatterns"); err != nil {
		return nil, err
	}
	out := make([]domain.Pattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, f.addPattern(p))
	}
	if date != "" {
		f.mu.Lock()
		delete(f.dayBlocks, date)
		f.mu.Unlock()
	}
	return out, nil
}

func (f *fakeBackend) UpdatePatterns(_ context.Context, patterns []domain.Pattern) ([]domain.Pattern, error) {
	if err := f.enter("UpdatePatterns"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range patterns {
		for i := range f.patterns {
			if f.patterns[i].ID == p.ID {
				f.patterns[i] = p
			}
		}
	}
	return patterns, nil
}

func (f *fakeBackend) DeletePatterns(_ context.Context, ids []string) error {
	if err := f.enter("DeletePatterns"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := f.patterns[:0]
	for _, p := range f.patterns {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	f.patterns = kept
	return nil
}

func (f *fakeBackend) Block(_ context.Context, req BlockRequest) error {
	if err := f.enter("Block"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.StartTime == "" {
		f.dayBlocks[req.Date] = req.Reason
	}
	return nil
}

func (f *fakeBackend) Unblock(_ context.Context, req UnblockRequest) error {
	if err := f.enter("Unblock"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.dayBlocks, req.Date)
	return nil
}

var _ Backend = (*fakeBackend)(nil)
