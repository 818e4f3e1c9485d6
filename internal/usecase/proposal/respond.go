package proposal

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// ======================================================
// REJECT
// ======================================================

type RejectProposal struct {
	d Deps
}

func NewRejectProposal(d Deps) *RejectProposal {
	return &RejectProposal{d: d}
}

func (uc *RejectProposal) Execute(
	ctx context.Context,
	actor identity.Actor,
	proposalID uint,
	response string,
) (p *models.AppointmentProposal, err error) {

	defer func() { uc.d.result("reject", err) }()

	p, err = uc.d.transition(ctx, actor, proposalID, func(tx domain.Tx, p *models.AppointmentProposal, now time.Time) error {
		if err := domain.Reject(p, actor, response, now); err != nil {
			return err
		}
		return tx.UpdateProposal(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.d.Events.Emit(proposalEvent(events.ProposalRejected, p, uc.d.Clock.Now()))
	return p, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelProposal struct {
	d Deps
}

func NewCancelProposal(d Deps) *CancelProposal {
	return &CancelProposal{d: d}
}

func (uc *CancelProposal) Execute(
	ctx context.Context,
	actor identity.Actor,
	proposalID uint,
) (p *models.AppointmentProposal, err error) {

	defer func() { uc.d.result("cancel", err) }()

	p, err = uc.d.transition(ctx, actor, proposalID, func(tx domain.Tx, p *models.AppointmentProposal, now time.Time) error {
		if err := domain.Cancel(p, actor, now); err != nil {
			return err
		}
		return tx.UpdateProposal(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.d.Events.Emit(proposalEvent(events.ProposalCancelled, p, uc.d.Clock.Now()))
	return p, nil
}
