package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type LeadGormRepository struct {
	db *gorm.DB
}

func NewLeadGormRepository(db *gorm.DB) *LeadGormRepository {
	return &LeadGormRepository{db: db}
}

func (r *LeadGormRepository) HasAccess(ctx context.Context, professionalID, jobID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LeadAccessRecord{}).
		Where("professional_id = ? AND job_id = ? AND granted = ?", professionalID, jobID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantAccess: webhooks repetidos caem no índice único e viram no-op.
func (r *LeadGormRepository) GrantAccess(ctx context.Context, rec *models.LeadAccessRecord) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var _ domain.Repository = (*LeadGormRepository)(nil)
