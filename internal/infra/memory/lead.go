package memory

import (
	"context"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type LeadRepository struct {
	s *Store
}

func (r *LeadRepository) HasAccess(ctx context.Context, professionalID, jobID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.leads[leadKey{professionalID, jobID}]
	return ok && rec.Granted, nil
}

func (r *LeadRepository) GrantAccess(ctx context.Context, rec *models.LeadAccessRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := leadKey{rec.ProfessionalID, rec.JobID}
	if existing, ok := r.s.leads[key]; ok {
		*rec = existing
		return false, nil
	}

	rec.ID = r.s.nextID()
	r.s.leads[key] = *rec
	return true, nil
}

var _ domain.Repository = (*LeadRepository)(nil)
