package availability

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type Repository interface {
	// -------- Patterns --------
	ListPatterns(
		ctx context.Context,
		expertID string,
	) ([]models.AvailabilityPattern, error)

	// CreatePatterns and UpdatePatterns re-check overlap against the
	// expert's stored patterns while holding a lock on them and fail with
	// CodeTimeConflict.
	CreatePatterns(
		ctx context.Context,
		expertID string,
		patterns []models.AvailabilityPattern,
	) error

	UpdatePatterns(
		ctx context.Context,
		expertID string,
		patterns []models.AvailabilityPattern,
	) error

	DeletePatterns(
		ctx context.Context,
		expertID string,
		ids []string,
	) (int64, error)

	// -------- Blocks --------
	ListBlocks(
		ctx context.Context,
		expertID string,
		fromDate string,
		toDate string,
	) ([]models.SlotBlock, error)

	CreateBlock(
		ctx context.Context,
		block *models.SlotBlock,
	) error

	DeleteBlocks(
		ctx context.Context,
		expertID string,
		date string,
		startTime string,
		endTime string,
	) (int64, error)

	// -------- Bookings --------
	ListBookings(
		ctx context.Context,
		expertID string,
		date string,
	) ([]models.Booking, error)

	CreateBooking(
		ctx context.Context,
		booking *models.Booking,
	) error

	// -------- Users --------
	GetUser(
		ctx context.Context,
		id string,
	) (*models.User, error)
}

// MonthCache stores computed monthly availability per expert.
type MonthCache interface {
	GetMonth(ctx context.Context, expertID string, month, year int) (MonthlyAvailability, bool)
	SetMonth(ctx context.Context, expertID string, month, year int, m MonthlyAvailability)
	InvalidateExpert(ctx context.Context, expertID string)
}
