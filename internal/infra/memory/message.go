package memory

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type MessageRepository struct {
	s *Store
}

func (r *MessageRepository) GetThread(ctx context.Context, threadID uint) (*models.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.threads[threadID]
	if !ok {
		return nil, httperr.ErrNotFound("thread_not_found")
	}
	return &t, nil
}

func (r *MessageRepository) FindThread(ctx context.Context, jobID, professionalID uint) (*models.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.threadIndex[threadKey{jobID, professionalID}]
	if !ok {
		return nil, httperr.ErrNotFound("thread_not_found")
	}
	t := r.s.threads[id]
	return &t, nil
}

func (r *MessageRepository) GetOrCreateThread(ctx context.Context, t *models.Thread) (*models.Thread, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := threadKey{t.JobID, t.ProfessionalID}
	if id, ok := r.s.threadIndex[key]; ok {
		existing := r.s.threads[id]
		return &existing, nil
	}

	created := *t
	created.ID = r.s.nextID()
	now := time.Now()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.s.threads[created.ID] = created
	r.s.threadIndex[key] = created.ID
	return &created, nil
}

func (r *MessageRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.appendMessage(m)
	return nil
}

func (r *MessageRepository) CreateFirstReply(ctx context.Context, m *models.Message) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.threads[m.ThreadID]; !ok {
		return false, httperr.ErrNotFound("thread_not_found")
	}
	for _, existing := range r.s.messages {
		if existing.ThreadID == m.ThreadID && existing.SenderID == m.SenderID {
			return false, nil
		}
	}

	r.s.appendMessage(m)
	return true, nil
}

func (r *MessageRepository) ListThreadMessages(ctx context.Context, threadID uint) ([]models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Message{}
	for _, m := range r.s.messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MessageRepository) MarkThreadRead(ctx context.Context, threadID, receiverID uint, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for i := range r.s.messages {
		m := &r.s.messages[i]
		if m.ThreadID != threadID || m.ReceiverID != receiverID || m.IsRead {
			continue
		}
		m.IsRead = true
		readAt := at
		m.ReadAt = &readAt
		n++
	}
	return n, nil
}

// appendMessage exige s.mu travado.
func (s *Store) appendMessage(m *models.Message) {
	m.ID = s.nextID()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.messages = append(s.messages, *m)
}

var _ domain.Repository = (*MessageRepository)(nil)
