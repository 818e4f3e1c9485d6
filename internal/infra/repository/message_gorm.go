package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) GetThread(ctx context.Context, threadID uint) (*models.Thread, error) {
	var t models.Thread
	if err := r.db.WithContext(ctx).First(&t, threadID).Error; err != nil {
		return nil, notFound(err, "thread_not_found")
	}
	return &t, nil
}

func (r *MessageGormRepository) FindThread(ctx context.Context, jobID, professionalID uint) (*models.Thread, error) {
	var t models.Thread
	if err := r.db.WithContext(ctx).
		Where("job_id = ? AND professional_id = ?", jobID, professionalID).
		First(&t).Error; err != nil {
		return nil, notFound(err, "thread_not_found")
	}
	return &t, nil
}

func (r *MessageGormRepository) GetOrCreateThread(ctx context.Context, t *models.Thread) (*models.Thread, error) {
	db := r.db.WithContext(ctx)

	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "professional_id"}},
			DoNothing: true,
		}).
		Create(t).Error; err != nil {
		return nil, err
	}

	var out models.Thread
	if err := db.
		Where("job_id = ? AND professional_id = ?", t.JobID, t.ProfessionalID).
		First(&out).Error; err != nil {
		return nil, notFound(err, "thread_not_found")
	}
	return &out, nil
}

func (r *MessageGormRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// CreateFirstReply trava a linha do thread para que duas primeiras respostas
// simultâneas não passem as duas.
func (r *MessageGormRepository) CreateFirstReply(ctx context.Context, m *models.Message) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Thread
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&t, m.ThreadID).Error; err != nil {
			return notFound(err, "thread_not_found")
		}

		var n int64
		if err := tx.Model(&models.Message{}).
			Where("thread_id = ? AND sender_id = ?", m.ThreadID, m.SenderID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := tx.Create(m).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *MessageGormRepository) ListThreadMessages(ctx context.Context, threadID uint) ([]models.Message, error) {
	var out []models.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MessageGormRepository) MarkThreadRead(ctx context.Context, threadID, receiverID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("thread_id = ? AND receiver_id = ? AND is_read = ?", threadID, receiverID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

var _ domain.Repository = (*MessageGormRepository)(nil)
