package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// tx atende tanto appointment.Tx quanto proposal.Tx; a serialização real
// vem de Store.txMu.
type tx struct {
	s *Store
}

func (t *tx) LockSchedule(ctx context.Context, professionalID uint) error {
	return ctx.Err()
}

func (t *tx) GetAppointmentForUpdate(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	ap, ok := t.s.appointments[appointmentID]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (t *tx) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	return t.s.activeAppointments(professionalID, start, end, isActive), nil
}

func (t *tx) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	t.s.createAppointment(ap)
	return nil
}

func (t *tx) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.appointments[ap.ID]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	t.s.updateAppointment(ap)
	return nil
}

func (t *tx) GetProposalForUpdate(ctx context.Context, proposalID uint) (*models.AppointmentProposal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	p, ok := t.s.proposals[proposalID]
	if !ok {
		return nil, httperr.ErrNotFound("proposal_not_found")
	}
	return &p, nil
}

func (t *tx) UpdateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, ok := t.s.proposals[p.ID]; !ok {
		return httperr.ErrNotFound("proposal_not_found")
	}
	t.s.updateProposal(p)
	return nil
}

var (
	_ appointment.Tx = (*tx)(nil)
	_ proposal.Tx    = (*tx)(nil)
)
