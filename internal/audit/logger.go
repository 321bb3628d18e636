package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// Store persists audit events.
type Store interface {
	Log(ctx context.Context, ev Event) error
}

// Query selects one page of an actor's audit trail. Zero From/To leave that
// side open; To is exclusive.
type Query struct {
	ActorID string
	Action  string
	Entity  string
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

// Reader lists stored audit rows, newest first, with the unpaged total.
type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func toRow(ev Event) models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
}

// ======================================================
// Postgres
// ======================================================

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := toRow(ev)
	return l.db.WithContext(ctx).Create(&row).Error
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	tx := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("actor_id = ?", q.ActorID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := tx.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ======================================================
// In memory
// ======================================================

// MemoryStore keeps events in process for runs without Postgres.
type MemoryStore struct {
	mu   sync.Mutex
	rows []models.AuditLog
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) Log(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := toRow(ev)
	row.ID = uint(len(m.rows) + 1)
	row.CreatedAt = m.now()
	m.rows = append(m.rows, row)
	return nil
}

func (m *MemoryStore) List(_ context.Context, q Query) ([]models.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]models.AuditLog, 0)
	for _, r := range m.rows {
		switch {
		case r.ActorID != q.ActorID,
			q.Action != "" && r.Action != q.Action,
			q.Entity != "" && r.Entity != q.Entity,
			!q.From.IsZero() && r.CreatedAt.Before(q.From),
			!q.To.IsZero() && !r.CreatedAt.Before(q.To):
			continue
		}
		matched = append(matched, r)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

var (
	_ Reader = (*Logger)(nil)
	_ Reader = (*MemoryStore)(nil)
	_ Store  = (*MemoryStore)(nil)
)
