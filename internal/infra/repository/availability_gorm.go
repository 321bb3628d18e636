package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Patterns
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListPatterns(
	ctx context.Context,
	expertID string,
) ([]models.AvailabilityPattern, error) {

	var patterns []models.AvailabilityPattern
	if err := r.db.WithContext(ctx).
		Where("expert_id = ?", expertID).
		Order("day_of_week ASC, start_time ASC").
		Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}

// Advisory lock namespaces, combined with the expert id.
const (
	lockScopePatterns = "availability_patterns:"
	lockScopeBookings = "bookings:"
)

// lockExpert takes a transaction scoped advisory lock for scope+expertID.
// Row locks cannot cover an expert with no rows yet, so writers of the same
// set serialize here and the reads that follow see each other's commits.
func lockExpert(tx *gorm.DB, scope, expertID string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", scope+expertID).Error
}

func lockPatterns(tx *gorm.DB, expertID string) ([]models.AvailabilityPattern, error) {
	if err := lockExpert(tx, lockScopePatterns, expertID); err != nil {
		return nil, err
	}

	var existing []models.AvailabilityPattern
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("expert_id = ?", expertID).
		Find(&existing).Error
	return existing, err
}

func (r *AvailabilityGormRepository) CreatePatterns(
	ctx context.Context,
	expertID string,
	patterns []models.AvailabilityPattern,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := lockPatterns(tx, expertID)
		if err != nil {
			return err
		}

		for i := range patterns {
			patterns[i].ExpertID = expertID
		}

		if domain.PatternSetConflicts(append(existing, patterns...)) {
			return httperr.ErrBusiness(domain.CodeTimeConflict)
		}

		return tx.Create(&patterns).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(domain.CodeTimeConflict)
	}
	return err
}

func (r *AvailabilityGormRepository) UpdatePatterns(
	ctx context.Context,
	expertID string,
	patterns []models.AvailabilityPattern,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := lockPatterns(tx, expertID)
		if err != nil {
			return err
		}

		byID := make(map[string]int, len(existing))
		for i, p := range existing {
			byID[p.ID] = i
		}

		for _, p := range patterns {
			idx, ok := byID[p.ID]
			if !ok {
				return httperr.ErrBusiness(domain.CodePatternNotFound)
			}
			existing[idx].DayOfWeek = p.DayOfWeek
			existing[idx].StartTime = p.StartTime
			existing[idx].EndTime = p.EndTime
		}

		if domain.PatternSetConflicts(existing) {
			return httperr.ErrBusiness(domain.CodeTimeConflict)
		}

		for _, p := range patterns {
			if err := tx.Model(&models.AvailabilityPattern{}).
				Where("id = ? AND expert_id = ?", p.ID, expertID).
				Updates(map[string]any{
					"day_of_week": p.DayOfWeek,
					"start_time":  p.StartTime,
					"end_time":    p.EndTime,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(domain.CodeTimeConflict)
	}
	return err
}

func (r *AvailabilityGormRepository) DeletePatterns(
	ctx context.Context,
	expertID string,
	ids []string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("expert_id = ? AND id IN ?", expertID, ids).
		Delete(&models.AvailabilityPattern{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBlocks(
	ctx context.Context,
	expertID string,
	fromDate string,
	toDate string,
) ([]models.SlotBlock, error) {

	var blocks []models.SlotBlock
	if err := r.db.WithContext(ctx).
		Where("expert_id = ? AND date >= ? AND date <= ?", expertID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *AvailabilityGormRepository) CreateBlock(
	ctx context.Context,
	block *models.SlotBlock,
) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *AvailabilityGormRepository) DeleteBlocks(
	ctx context.Context,
	expertID string,
	date string,
	startTime string,
	endTime string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where(
			"expert_id = ? AND date = ? AND start_time = ? AND end_time = ?",
			expertID, date, startTime, endTime,
		).
		Delete(&models.SlotBlock{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBookings(
	ctx context.Context,
	expertID string,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("expert_id = ? AND date = ?", expertID, date).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *AvailabilityGormRepository) CreateBooking(
	ctx context.Context,
	booking *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExpert(tx, lockScopeBookings, booking.ExpertID); err != nil {
			return err
		}

		var conflicts []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"expert_id = ? AND date = ? AND status = ? AND start_time < ? AND end_time > ?",
				booking.ExpertID,
				booking.Date,
				models.BookingScheduled,
				booking.EndTime,
				booking.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}

		err := tx.Create(booking).Error
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}
		return err
	})
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetUser(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Compile-time check
var _ domain.Repository = (*AvailabilityGormRepository)(nil)
