package memory

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type ProposalRepository struct {
	s *Store
}

func (r *ProposalRepository) CreateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.proposals[p.ID] = *p
	return nil
}

func (r *ProposalRepository) GetProposal(ctx context.Context, proposalID uint) (*models.AppointmentProposal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.proposals[proposalID]
	if !ok {
		return nil, httperr.ErrNotFound("proposal_not_found")
	}
	return &p, nil
}

func (r *ProposalRepository) ListThreadProposals(ctx context.Context, threadID uint) ([]models.AppointmentProposal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.AppointmentProposal{}
	for _, p := range r.s.proposals {
		if p.ThreadID == threadID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProposalRepository) UpdateProposal(ctx context.Context, p *models.AppointmentProposal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.proposals[p.ID]; !ok {
		return httperr.ErrNotFound("proposal_not_found")
	}
	r.s.updateProposal(p)
	return nil
}

func (r *ProposalRepository) ExpireStale(ctx context.Context, now time.Time) ([]models.AppointmentProposal, error) {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expired := []models.AppointmentProposal{}
	for id, p := range r.s.proposals {
		if domain.Status(p.Status) != domain.StatusProposed || p.ProposedStart.After(now) {
			continue
		}
		p.Status = string(domain.StatusExpired)
		p.UpdatedAt = now
		r.s.proposals[id] = p
		expired = append(expired, p)
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].ID < expired[j].ID })
	return expired, nil
}

func (r *ProposalRepository) Transaction(ctx context.Context, fn func(tx domain.Tx) error) error {
	return r.s.inTx(func() error {
		return fn(&tx{s: r.s})
	})
}

var _ domain.Repository = (*ProposalRepository)(nil)
