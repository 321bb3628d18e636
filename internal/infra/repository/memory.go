package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// MemoryRepository keeps everything in process. It backs the server when
// DATABASE_URL=memory and the handler and use case tests.
type MemoryRepository struct {
	mu       sync.Mutex
	patterns []models.AvailabilityPattern
	blocks   []models.SlotBlock
	bookings []models.Booking
	users    map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return httperr.ErrBusiness(user.CodeEmailTaken)
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepository) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) ListPatterns(_ context.Context, expertID string) ([]models.AvailabilityPattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AvailabilityPattern, 0)
	for _, p := range r.patterns {
		if p.ExpertID == expertID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *MemoryRepository) expertPatterns(expertID string) []models.AvailabilityPattern {
	var out []models.AvailabilityPattern
	for _, p := range r.patterns {
		if p.ExpertID == expertID {
			out = append(out, p)
		}
	}
	return out
}

func (r *MemoryRepository) CreatePatterns(_ context.Context, expertID string, patterns []models.AvailabilityPattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range patterns {
		patterns[i].ExpertID = expertID
		if patterns[i].ID == "" {
			patterns[i].ID = uuid.New().String()
		}
		patterns[i].CreatedAt = now
		patterns[i].UpdatedAt = now
	}

	if domain.PatternSetConflicts(append(r.expertPatterns(expertID), patterns...)) {
		return httperr.ErrBusiness(domain.CodeTimeConflict)
	}

	r.patterns = append(r.patterns, patterns...)
	return nil
}

func (r *MemoryRepository) UpdatePatterns(_ context.Context, expertID string, patterns []models.AvailabilityPattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.AvailabilityPattern, len(r.patterns))
	copy(next, r.patterns)

	for _, p := range patterns {
		found := false
		for i := range next {
			if next[i].ID == p.ID && next[i].ExpertID == expertID {
				next[i].DayOfWeek = p.DayOfWeek
				next[i].StartTime = p.StartTime
				next[i].EndTime = p.EndTime
				next[i].UpdatedAt = time.Now()
				found = true
				break
			}
		}
		if !found {
			return httperr.ErrBusiness(domain.CodePatternNotFound)
		}
	}

	var mine []models.AvailabilityPattern
	for _, p := range next {
		if p.ExpertID == expertID {
			mine = append(mine, p)
		}
	}
	if domain.PatternSetConflicts(mine) {
		return httperr.ErrBusiness(domain.CodeTimeConflict)
	}

	r.patterns = next
	return nil
}

func (r *MemoryRepository) DeletePatterns(_ context.Context, expertID string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := r.patterns[:0]
	var n int64
	for _, p := range r.patterns {
		if p.ExpertID == expertID && drop[p.ID] {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.patterns = kept
	return n, nil
}

func (r *MemoryRepository) ListBlocks(_ context.Context, expertID, fromDate, toDate string) ([]models.SlotBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.SlotBlock, 0)
	for _, b := range r.blocks {
		if b.ExpertID == expertID && b.Date >= fromDate && b.Date <= toDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateBlock(_ context.Context, block *models.SlotBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	block.CreatedAt = time.Now()
	r.blocks = append(r.blocks, *block)
	return nil
}

func (r *MemoryRepository) DeleteBlocks(_ context.Context, expertID, date, startTime, endTime string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.blocks[:0]
	var n int64
	for _, b := range r.blocks {
		if b.ExpertID == expertID && b.Date == date && b.StartTime == startTime && b.EndTime == endTime {
			n++
			continue
		}
		kept = append(kept, b)
	}
	r.blocks = kept
	return n, nil
}

func (r *MemoryRepository) ListBookings(_ context.Context, expertID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.ExpertID == expertID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateBooking(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	want, err := domain.ParseRange(booking.StartTime, booking.EndTime)
	if err != nil {
		return err
	}
	for _, b := range r.bookings {
		if b.ExpertID != booking.ExpertID || b.Date != booking.Date || b.Status != models.BookingScheduled {
			continue
		}
		iv, err := domain.ParseRange(b.StartTime, b.EndTime)
		if err == nil && iv.Intersects(want) {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingScheduled
	}
	booking.CreatedAt = time.Now()
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *MemoryRepository) GetUser(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

var (
	_ domain.Repository = (*MemoryRepository)(nil)
	_ user.Repository   = (*MemoryRepository)(nil)
)
