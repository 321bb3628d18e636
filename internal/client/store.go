package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

// ErrStale is returned by a load whose response was superseded by a newer
// load or local mutation of the same key. The store is left unchanged.
var ErrStale = errors.New("stale response discarded")

// Backend is the remote side of the store and the commands. *API implements
// it over HTTP.
type Backend interface {
	Patterns(ctx context.Context, expertID string) ([]domain.Pattern, error)
	Monthly(ctx context.Context, expertID string, month, year int) (domain.MonthlyAvailability, error)
	DaySlots(ctx context.Context, expertID, date string) ([]domain.TimeSlot, error)
	// CreatePatterns stores patterns. A non-empty date also lifts the
	// whole-day block on that date.
	CreatePatterns(ctx context.Context, date string, patterns []domain.Pattern) ([]domain.Pattern, error)
	UpdatePatterns(ctx context.Context, patterns []domain.Pattern) ([]domain.Pattern, error)
	DeletePatterns(ctx context.Context, ids []string) error
	Block(ctx context.Context, req BlockRequest) error
	Unblock(ctx context.Context, req UnblockRequest) error
}

const patternsKey = "patterns"

func monthKey(month, year int) string {
	return fmt.Sprintf("month:%04d-%02d", year, month)
}

func dayKey(date string) string {
	return "day:" + date
}

// Store mirrors one expert's availability: the visible month, the slots of
// the selected day and the weekly patterns. It is safe for concurrent use.
type Store struct {
	backend  Backend
	expertID string

	mu  sync.Mutex
	seq map[string]uint64

	monthly  domain.MonthlyAvailability
	selected string

	slotsDate string
	slots     []domain.TimeSlot

	patterns       []domain.Pattern
	patternsLoaded bool
}

func NewStore(backend Backend, expertID string) *Store {
	return &Store{
		backend:  backend,
		expertID: expertID,
		seq:      make(map[string]uint64),
		monthly:  domain.MonthlyAvailability{},
	}
}

func (s *Store) ExpertID() string {
	return s.expertID
}

// begin issues the next sequence number for key. Callers hold mu.
func (s *Store) begin(key string) uint64 {
	s.seq[key]++
	return s.seq[key]
}

func (s *Store) latest(key string, seq uint64) bool {
	return s.seq[key] == seq
}

// --------------------------------------------------
// Loads
// --------------------------------------------------

func (s *Store) LoadMonth(ctx context.Context, month, year int) (domain.MonthlyAvailability, error) {
	key := monthKey(month, year)

	s.mu.Lock()
	seq := s.begin(key)
	s.mu.Unlock()

	m, err := s.backend.Monthly(ctx, s.expertID, month, year)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.latest(key, seq) {
		return nil, ErrStale
	}

	s.monthly = make(domain.MonthlyAvailability, len(m))
	for d, ok := range m {
		s.monthly[d] = ok
	}
	return copyMonth(s.monthly), nil
}

// LoadDay selects date and fetches its slots. The response is applied only
// if it is the newest load for that date and date is still selected.
func (s *Store) LoadDay(ctx context.Context, date string) ([]domain.TimeSlot, error) {
	if _, err := domain.ParseDate(date, nil); err != nil {
		return nil, err
	}
	key := dayKey(date)

	s.mu.Lock()
	s.selected = date
	seq := s.begin(key)
	s.mu.Unlock()

	slots, err := s.backend.DaySlots(ctx, s.expertID, date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.latest(key, seq) || s.selected != date {
		return nil, ErrStale
	}

	s.slotsDate = date
	s.slots = normalizeSlots(slots, date)
	return copySlots(s.slots), nil
}

func (s *Store) LoadPatterns(ctx context.Context) ([]domain.Pattern, error) {
	s.mu.Lock()
	seq := s.begin(patternsKey)
	s.mu.Unlock()

	patterns, err := s.backend.Patterns(ctx, s.expertID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.latest(patternsKey, seq) {
		return nil, ErrStale
	}

	s.patterns = append([]domain.Pattern(nil), patterns...)
	s.patternsLoaded = true
	return append([]domain.Pattern(nil), s.patterns...), nil
}

// --------------------------------------------------
// Snapshots
// --------------------------------------------------

func (s *Store) Monthly() domain.MonthlyAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMonth(s.monthly)
}

// DayAvailable reports the month flag for date and whether it is known.
func (s *Store) DayAvailable(date string) (available, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	available, known = s.monthly[date]
	return available, known
}

func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Slots returns the loaded slots and the date they belong to.
func (s *Store) Slots() (string, []domain.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotsDate, copySlots(s.slots)
}

func (s *Store) Patterns() []domain.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Pattern(nil), s.patterns...)
}

// --------------------------------------------------
// Local mutations, applied by commands after the remote call succeeded.
// Each one bumps the key it touches so loads already in flight cannot
// overwrite it.
// --------------------------------------------------

func (s *Store) setDayAvailable(date string, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, err := domain.ParseDate(date, nil); err == nil {
		s.begin(monthKey(int(d.Month()), d.Year()))
	}
	if s.monthly == nil {
		s.monthly = domain.MonthlyAvailability{}
	}
	s.monthly[date] = available
}

func (s *Store) slotsFor(date string) ([]domain.TimeSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotsDate != date {
		return nil, false
	}
	return copySlots(s.slots), true
}

func (s *Store) findSlot(id string) (domain.TimeSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sl := range s.slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return domain.TimeSlot{}, false
}

func (s *Store) patternsSnapshot() ([]domain.Pattern, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Pattern(nil), s.patterns...), s.patternsLoaded
}

func (s *Store) addSlot(slot domain.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begin(dayKey(slot.Date))
	if s.slotsDate != slot.Date {
		s.slotsDate = slot.Date
		s.slots = nil
	}
	s.slots = append(s.slots, slot.Normalize())
	sortSlots(s.slots)
}

func (s *Store) updateSlot(id, start, end string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begin(dayKey(s.slotsDate))
	for i := range s.slots {
		if s.slots[i].ID == id {
			s.slots[i].StartTime = start
			s.slots[i].EndTime = end
		}
	}
	sortSlots(s.slots)
}

func (s *Store) removeSlot(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begin(dayKey(s.slotsDate))
	kept := s.slots[:0]
	for _, sl := range s.slots {
		if sl.ID != id {
			kept = append(kept, sl)
		}
	}
	s.slots = kept
}

// blockSlot marks the loaded slot with the given bounds on date as blocked.
func (s *Store) blockSlot(date, start, end, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotsDate != date {
		return
	}
	s.begin(dayKey(date))
	for i := range s.slots {
		if s.slots[i].StartTime == start && s.slots[i].EndTime == end {
			s.slots[i].Available = false
			s.slots[i].Reason = reason
			s.slots[i].Status = domain.StatusBlocked
		}
	}
}

func (s *Store) upsertPattern(p domain.Pattern) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begin(patternsKey)
	for i := range s.patterns {
		if s.patterns[i].ID == p.ID {
			s.patterns[i] = p
			return
		}
	}
	s.patterns = append(s.patterns, p)
}

func (s *Store) removePattern(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.begin(patternsKey)
	kept := s.patterns[:0]
	for _, p := range s.patterns {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.patterns = kept
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func normalizeSlots(in []domain.TimeSlot, date string) []domain.TimeSlot {
	out := make([]domain.TimeSlot, 0, len(in))
	for _, sl := range in {
		if sl.Date == "" {
			sl.Date = date
		}
		out = append(out, sl.Normalize())
	}
	sortSlots(out)
	return out
}

func sortSlots(slots []domain.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, errA := domain.ParseClock(slots[i].StartTime)
		b, errB := domain.ParseClock(slots[j].StartTime)
		if errA != nil || errB != nil {
			return slots[i].StartTime < slots[j].StartTime
		}
		return a < b
	})
}

func copySlots(in []domain.TimeSlot) []domain.TimeSlot {
	return append([]domain.TimeSlot{}, in...)
}

func copyMonth(in domain.MonthlyAvailability) domain.MonthlyAvailability {
	out := make(domain.MonthlyAvailability, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
