package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// Logger grava cada evento despachado em audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

var _ events.Publisher = (*Logger)(nil)

func (l *Logger) Publish(ctx context.Context, ev events.Event) error {
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ToLog(ev)).Error
}

func ToLog(ev events.Event) *models.AuditLog {
	var metaJSON string
	if ev.Payload != nil {
		if b, err := json.Marshal(ev.Payload); err == nil {
			metaJSON = string(b)
		}
	}

	row := &models.AuditLog{
		EventID:        ev.ID.String(),
		ProfessionalID: ev.ProfessionalID,
		Action:         ev.Type,
		Entity:         ev.Entity,
		Metadata:       metaJSON,
		CreatedAt:      ev.OccurredAt,
	}

	if ev.CustomerID != 0 {
		id := ev.CustomerID
		row.CustomerID = &id
	}
	if ev.EntityID != 0 {
		id := ev.EntityID
		row.EntityID = &id
	}

	return row
}

// ======================================================
// LEITURA
// ======================================================

type Query struct {
	ProfessionalID uint
	Action         string
	Entity         string
	From           time.Time
	To             time.Time
	Page           int
	Limit          int
}

// List é sempre escopado pelo mester.
func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	base := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("professional_id = ?", q.ProfessionalID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		base = base.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		base = base.Where("created_at < ?", q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}

	return logs, total, nil
}
