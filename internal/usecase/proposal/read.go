package proposal

import (
	"context"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// ======================================================
// GET / LIST (expiração lazy na leitura)
// ======================================================

type GetProposal struct {
	d Deps
}

func NewGetProposal(d Deps) *GetProposal {
	return &GetProposal{d: d}
}

func (uc *GetProposal) Execute(
	ctx context.Context,
	actor identity.Actor,
	proposalID uint,
) (*models.AppointmentProposal, error) {

	p, err := uc.d.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !participant(p, actor.UserID) {
		return nil, httperr.ErrNotFound("proposal_not_found")
	}

	domain.Resolve(p, uc.d.Clock.Now())
	return p, nil
}

type ListThreadProposals struct {
	d Deps
}

func NewListThreadProposals(d Deps) *ListThreadProposals {
	return &ListThreadProposals{d: d}
}

func (uc *ListThreadProposals) Execute(
	ctx context.Context,
	actor identity.Actor,
	threadID uint,
) ([]models.AppointmentProposal, error) {

	thread, err := uc.d.Threads.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(actor.UserID) {
		return nil, httperr.ErrNotFound("thread_not_found")
	}

	list, err := uc.d.Proposals.ListThreadProposals(ctx, threadID)
	if err != nil {
		return nil, err
	}

	now := uc.d.Clock.Now()
	for i := range list {
		domain.Resolve(&list[i], now)
	}
	return list, nil
}

// ======================================================
// SWEEP
// ======================================================

// ExpireStale grava "expired" nas propostas vencidas. A leitura já
// esconde o estado vencido; o sweep só materializa e notifica.
type ExpireStale struct {
	d Deps
}

func NewExpireStale(d Deps) *ExpireStale {
	return &ExpireStale{d: d}
}

func (uc *ExpireStale) Execute(ctx context.Context) (int, error) {
	now := uc.d.Clock.Now()

	expired, err := uc.d.Proposals.ExpireStale(ctx, now)
	if err != nil {
		return 0, err
	}

	for i := range expired {
		uc.d.Events.Emit(proposalEvent(events.ProposalExpired, &expired[i], now))
		uc.d.Metrics.Transition("expire", "ok")
	}

	if len(expired) > 0 {
		uc.d.Log.InfoContext(ctx, "proposals expired", "count", len(expired))
	}
	return len(expired), nil
}
