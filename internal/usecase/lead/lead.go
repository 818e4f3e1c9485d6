package lead

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

// ======================================================
// HAS ACCESS
// ======================================================

type HasAccess struct {
	repo domain.Repository
}

func NewHasAccess(repo domain.Repository) *HasAccess {
	return &HasAccess{repo: repo}
}

func (uc *HasAccess) Execute(
	ctx context.Context,
	actor identity.Actor,
	jobID uint,
) (bool, error) {

	if !actor.IsMester() {
		return false, httperr.ErrForbidden("mester_only")
	}
	return uc.repo.HasAccess(ctx, actor.UserID, jobID)
}

// ======================================================
// GRANT ACCESS
// ======================================================

// GrantAccess só é chamado a partir de um pagamento confirmado.
// Repetir a mesma confirmação não é erro.
type GrantAccess struct {
	repo   domain.Repository
	events events.Emitter
	log    *slog.Logger
	clock  timezone.Clock
}

func NewGrantAccess(
	repo domain.Repository,
	emitter events.Emitter,
	log *slog.Logger,
	clock timezone.Clock,
) *GrantAccess {
	return &GrantAccess{repo: repo, events: emitter, log: log, clock: clock}
}

func (uc *GrantAccess) Execute(
	ctx context.Context,
	c payment.Confirmation,
) (bool, error) {

	now := uc.clock.Now()

	rec, err := domain.NewRecord(c.ProfessionalID, c.JobID, c.Provider, c.Reference, now)
	if err != nil {
		return false, err
	}

	created, err := uc.repo.GrantAccess(ctx, rec)
	if err != nil {
		return false, err
	}

	if !created {
		uc.log.InfoContext(ctx, "lead access already granted",
			"professional_id", c.ProfessionalID,
			"job_id", c.JobID,
			"provider", c.Provider,
		)
		return false, nil
	}

	uc.events.Emit(events.New(events.LeadAccessGranted, "lead", rec.ID, now).
		For(c.ProfessionalID, 0).
		With("job_id", c.JobID).
		With("provider", rec.Provider).
		With("reference", rec.Reference))

	return true, nil
}
