package db

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/expert-scheduler/internal/config"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// MemoryDSN selects the in-process repository instead of Postgres.
const MemoryDSN = "memory"

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Error)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.AvailabilityPattern{},
		&models.SlotBlock{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return nil, err
	}

	// A slot start can hold at most one scheduled booking.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_slot_scheduled
        ON bookings (expert_id, date, start_time)
        WHERE status = 'scheduled'
    `).Error; err != nil {
		log.Warn("failed to create booking slot index", zap.Error(err))
	}

	db.Exec(`
        UPDATE users
        SET timezone = 'UTC'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db, nil
}

// Pinger adapts *gorm.DB to the readiness check.
type Pinger struct {
	DB *gorm.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
