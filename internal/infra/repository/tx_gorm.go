package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// gormTx roda dentro de db.Transaction; serve agenda e propostas.
type gormTx struct {
	db *gorm.DB
}

// LockSchedule: advisory lock por mester, liberado no commit/rollback.
// Cobre também o caso em que ainda não existe nenhuma linha para travar.
func (t *gormTx) LockSchedule(ctx context.Context, professionalID uint) error {
	return t.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(professionalID)).Error
}

func (t *gormTx) GetAppointmentForUpdate(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (t *gormTx) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listActive(t.db.WithContext(ctx), professionalID, start, end)
}

func (t *gormTx) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return t.db.WithContext(ctx).Create(ap).Error
}

func (t *gormTx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return t.db.WithContext(ctx).Save(ap).Error
}

func (t *gormTx) GetProposalForUpdate(ctx context.Context, proposalID uint) (*models.AppointmentProposal, error) {
	var p models.AppointmentProposal
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, proposalID).Error; err != nil {
		return nil, notFound(err, "proposal_not_found")
	}
	return &p, nil
}

func (t *gormTx) UpdateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	return t.db.WithContext(ctx).Save(p).Error
}

var (
	_ appointment.Tx = (*gormTx)(nil)
	_ proposal.Tx    = (*gormTx)(nil)
)
