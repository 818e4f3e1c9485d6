package lead

import (
	"context"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// Repository é o gate: existência do registro == acesso liberado.
type Repository interface {
	HasAccess(
		ctx context.Context,
		professionalID uint,
		jobID uint,
	) (bool, error)

	// GrantAccess é idempotente; created=false quando o acesso já existia.
	GrantAccess(
		ctx context.Context,
		rec *models.LeadAccessRecord,
	) (created bool, err error)
}
