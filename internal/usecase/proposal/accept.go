package proposal

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type AcceptResult struct {
	Proposal    *models.AppointmentProposal `json:"proposal"`
	Appointment *models.Appointment         `json:"appointment"`
}

// AcceptProposal: trava a agenda do mester e a linha da proposta,
// revalida estado e conflito e cria o agendamento na mesma transação.
// Em conflito nada muda e a proposta continua "proposed".
type AcceptProposal struct {
	d Deps
}

func NewAcceptProposal(d Deps) *AcceptProposal {
	return &AcceptProposal{d: d}
}

func (uc *AcceptProposal) Execute(
	ctx context.Context,
	actor identity.Actor,
	proposalID uint,
	response string,
) (res *AcceptResult, err error) {

	defer func() { uc.d.result("accept", err) }()

	current, err := uc.d.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !participant(current, actor.UserID) {
		return nil, httperr.ErrNotFound("proposal_not_found")
	}
	if err := uc.d.requireLeadAccess(ctx, actor, current.ProfessionalID, current.JobID); err != nil {
		return nil, err
	}

	buffer, err := uc.d.bufferFor(ctx, current.ProfessionalID)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment

	p, err := uc.d.transition(ctx, actor, proposalID, func(tx domain.Tx, p *models.AppointmentProposal, now time.Time) error {
		if err := domain.GuardAccept(p, actor, now); err != nil {
			return err
		}

		ap = domain.ToAppointment(p)
		if err := appointment.Book(ctx, tx, ap, buffer); err != nil {
			return err
		}

		domain.MarkAccepted(p, ap.ID, response, now)
		return tx.UpdateProposal(ctx, p)
	})
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.d.Metrics.BookingConflict()
		}
		return nil, err
	}

	now := uc.d.Clock.Now()
	uc.d.Events.Emit(proposalEvent(events.ProposalAccepted, p, now).With("appointment_id", ap.ID))
	uc.d.Events.Emit(events.New(events.AppointmentCreated, "appointment", ap.ID, now).
		For(ap.ProfessionalID, ap.CustomerID).
		With("proposal_id", p.ID).
		With("scheduled_start", ap.ScheduledStart.UTC()))

	return &AcceptResult{Proposal: p, Appointment: ap}, nil
}
