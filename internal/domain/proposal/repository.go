package proposal

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type Repository interface {
	CreateProposal(
		ctx context.Context,
		p *models.AppointmentProposal,
	) error

	GetProposal(
		ctx context.Context,
		proposalID uint,
	) (*models.AppointmentProposal, error)

	ListThreadProposals(
		ctx context.Context,
		threadID uint,
	) ([]models.AppointmentProposal, error)

	UpdateProposal(
		ctx context.Context,
		p *models.AppointmentProposal,
	) error

	// ExpireStale grava "expired" em todas as propostas "proposed" com
	// horário <= now e devolve as afetadas.
	ExpireStale(
		ctx context.Context,
		now time.Time,
	) ([]models.AppointmentProposal, error)

	Transaction(
		ctx context.Context,
		fn func(tx Tx) error,
	) error
}

// Tx estende a transação de agenda com a linha da proposta travada.
type Tx interface {
	appointment.Tx

	GetProposalForUpdate(
		ctx context.Context,
		proposalID uint,
	) (*models.AppointmentProposal, error)

	UpdateProposal(
		ctx context.Context,
		p *models.AppointmentProposal,
	) error
}
