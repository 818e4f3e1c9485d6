package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type ProposalGormRepository struct {
	db *gorm.DB
}

func NewProposalGormRepository(db *gorm.DB) *ProposalGormRepository {
	return &ProposalGormRepository{db: db}
}

func (r *ProposalGormRepository) CreateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProposalGormRepository) GetProposal(ctx context.Context, proposalID uint) (*models.AppointmentProposal, error) {
	var p models.AppointmentProposal
	if err := r.db.WithContext(ctx).First(&p, proposalID).Error; err != nil {
		return nil, notFound(err, "proposal_not_found")
	}
	return &p, nil
}

func (r *ProposalGormRepository) ListThreadProposals(ctx context.Context, threadID uint) ([]models.AppointmentProposal, error) {
	var out []models.AppointmentProposal
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProposalGormRepository) UpdateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// ExpireStale usa UPDATE ... RETURNING para não disputar com um aceite
// em andamento: linhas travadas por outra transação esperam o commit.
func (r *ProposalGormRepository) ExpireStale(ctx context.Context, now time.Time) ([]models.AppointmentProposal, error) {
	var expired []models.AppointmentProposal

	err := r.db.WithContext(ctx).
		Model(&expired).
		Clauses(clause.Returning{}).
		Where("status = ? AND proposed_start <= ?", string(domain.StatusProposed), now).
		Updates(map[string]any{
			"status":     string(domain.StatusExpired),
			"updated_at": now,
		}).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *ProposalGormRepository) Transaction(ctx context.Context, fn func(tx domain.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db})
	})
}

var _ domain.Repository = (*ProposalGormRepository)(nil)
