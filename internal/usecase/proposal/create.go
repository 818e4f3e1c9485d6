package proposal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type CreateProposalInput struct {
	ThreadID        uint
	ProposedStart   time.Time
	DurationMinutes int
	Price           decimal.Decimal
	Currency        string
	Location        string
	Notes           string
	OfferMessage    string
}

type CreateProposal struct {
	d Deps
}

func NewCreateProposal(d Deps) *CreateProposal {
	return &CreateProposal{d: d}
}

func (uc *CreateProposal) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateProposalInput,
) (p *models.AppointmentProposal, err error) {

	defer func() { uc.d.result("propose", err) }()

	thread, err := uc.d.Threads.GetThread(ctx, in.ThreadID)
	if err != nil {
		return nil, err
	}
	if !thread.HasParticipant(actor.UserID) {
		return nil, httperr.ErrNotFound("thread_not_found")
	}

	if err := uc.d.requireLeadAccess(ctx, actor, thread.ProfessionalID, thread.JobID); err != nil {
		return nil, err
	}

	minutes := in.DurationMinutes
	if minutes == 0 {
		minutes = defaultDuration(ctx, uc.d, thread.ProfessionalID)
	}

	p, err = domain.New(thread, actor, domain.Draft{
		ProposedStart:   in.ProposedStart,
		DurationMinutes: minutes,
		Price:           in.Price,
		Currency:        in.Currency,
		Location:        in.Location,
		Notes:           in.Notes,
		OfferMessage:    in.OfferMessage,
	}, uc.d.Clock.Now())
	if err != nil {
		return nil, err
	}

	if err := uc.d.Proposals.CreateProposal(ctx, p); err != nil {
		return nil, err
	}

	uc.d.Events.Emit(proposalEvent(events.ProposalCreated, p, uc.d.Clock.Now()))
	return p, nil
}

func defaultDuration(ctx context.Context, d Deps, professionalID uint) int {
	cfg, err := d.Schedules.GetWorkingHours(ctx, professionalID)
	if err != nil || cfg.DefaultDurationMinutes <= 0 {
		return 60
	}
	return cfg.DefaultDurationMinutes
}
