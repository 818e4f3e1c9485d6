package proposal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

const entity = "proposal"

// Deps agrupa o que os use cases de proposta usam.
type Deps struct {
	Proposals domain.Repository
	Schedules appointment.Repository
	Threads   message.Repository
	Leads     lead.Repository
	Events    events.Emitter
	Metrics   *metrics.Metrics
	Log       *slog.Logger
	Clock     timezone.Clock
}

func (d Deps) result(name string, err error) {
	if err == nil {
		d.Metrics.Transition(name, "ok")
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		d.Metrics.Transition(name, be.Code)
		d.Log.Warn("proposal transition refused", "transition", name, "code", be.Code)
		return
	}
	d.Metrics.Transition(name, "error")
}

// requireLeadAccess: o mester só negocia depois de comprar o lead.
func (d Deps) requireLeadAccess(ctx context.Context, actor identity.Actor, professionalID, jobID uint) error {
	if !actor.IsMester() {
		return nil
	}
	ok, err := d.Leads.HasAccess(ctx, professionalID, jobID)
	if err != nil {
		return err
	}
	if !ok {
		d.Metrics.SendRefused()
		return httperr.ErrAccessDenied("lead_access_required")
	}
	return nil
}

func (d Deps) bufferFor(ctx context.Context, professionalID uint) (time.Duration, error) {
	cfg, err := d.Schedules.GetWorkingHours(ctx, professionalID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return time.Duration(cfg.BufferMinutes) * time.Minute, nil
}

func proposalEvent(typ string, p *models.AppointmentProposal, at time.Time) events.Event {
	return events.New(typ, entity, p.ID, at).
		For(p.ProfessionalID, p.CustomerID).
		With("thread_id", p.ThreadID).
		With("status", p.Status).
		With("proposed_start", p.ProposedStart.UTC())
}

func participant(p *models.AppointmentProposal, userID uint) bool {
	return p.ProfessionalID == userID || p.CustomerID == userID
}

// transition roda mutate com a linha travada. Uma proposta vencida é
// gravada como expired (commit) e só então o chamador recebe o conflito.
func (d Deps) transition(
	ctx context.Context,
	actor identity.Actor,
	proposalID uint,
	mutate func(tx domain.Tx, p *models.AppointmentProposal, now time.Time) error,
) (*models.AppointmentProposal, error) {

	now := d.Clock.Now()

	var (
		out     *models.AppointmentProposal
		expired bool
	)

	err := d.Proposals.Transaction(ctx, func(tx domain.Tx) error {
		p, err := tx.GetProposalForUpdate(ctx, proposalID)
		if err != nil {
			return err
		}
		if !participant(p, actor.UserID) {
			return httperr.ErrNotFound("proposal_not_found")
		}

		if domain.Resolve(p, now) {
			expired = true
			out = p
			return tx.UpdateProposal(ctx, p)
		}

		if err := mutate(tx, p, now); err != nil {
			return err
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if expired {
		d.Events.Emit(proposalEvent(events.ProposalExpired, out, now))
		return out, httperr.ErrConflict("proposal_expired")
	}
	return out, nil
}
