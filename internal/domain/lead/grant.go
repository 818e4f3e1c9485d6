package lead

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

func NewRecord(professionalID, jobID uint, provider, reference string, now time.Time) (*models.LeadAccessRecord, error) {
	if professionalID == 0 {
		return nil, httperr.ErrValidation("invalid_professional")
	}
	if jobID == 0 {
		return nil, httperr.ErrValidation("invalid_job")
	}

	return &models.LeadAccessRecord{
		ProfessionalID: professionalID,
		JobID:          jobID,
		Granted:        true,
		GrantedAt:      now,
		Provider:       strings.ToLower(strings.TrimSpace(provider)),
		Reference:      strings.TrimSpace(reference),
	}, nil
}
