package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type leadKey struct {
	professionalID uint
	jobID          uint
}

type threadKey struct {
	jobID          uint
	professionalID uint
}

// Store guarda todo o estado em memória. Usado com STORAGE_DRIVER=memory e
// nos testes dos use cases.
//
// Transações são serializadas por txMu (uma por vez, para todos os mesters)
// e restauram um snapshot de agenda/propostas em caso de erro.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq uint

	workingHours map[uint]models.WorkingHoursConfig
	appointments map[uint]models.Appointment
	proposals    map[uint]models.AppointmentProposal
	leads        map[leadKey]models.LeadAccessRecord
	threads      map[uint]models.Thread
	threadIndex  map[threadKey]uint
	messages     []models.Message
}

func NewStore() *Store {
	return &Store{
		workingHours: map[uint]models.WorkingHoursConfig{},
		appointments: map[uint]models.Appointment{},
		proposals:    map[uint]models.AppointmentProposal{},
		leads:        map[leadKey]models.LeadAccessRecord{},
		threads:      map[uint]models.Thread{},
		threadIndex:  map[threadKey]uint{},
	}
}

// nextID exige s.mu travado.
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

func (s *Store) Proposals() *ProposalRepository {
	return &ProposalRepository{s: s}
}

func (s *Store) Leads() *LeadRepository {
	return &LeadRepository{s: s}
}

func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{s: s}
}

// ===============================
// Transaction
// ===============================

type snapshot struct {
	appointments map[uint]models.Appointment
	proposals    map[uint]models.AppointmentProposal
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		appointments: make(map[uint]models.Appointment, len(s.appointments)),
		proposals:    make(map[uint]models.AppointmentProposal, len(s.proposals)),
	}
	for k, v := range s.appointments {
		snap.appointments[k] = v
	}
	for k, v := range s.proposals {
		snap.proposals[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = snap.appointments
	s.proposals = snap.proposals
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ===============================
// Shared helpers (s.mu travado)
// ===============================

func (s *Store) activeAppointments(professionalID uint, start, end time.Time, active func(string) bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.ProfessionalID != professionalID || !active(ap.Status) {
			continue
		}
		if ap.ScheduledStart.Before(end) && ap.ScheduledEnd.After(start) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out
}

func (s *Store) createAppointment(ap *models.Appointment) {
	ap.ID = s.nextID()
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	s.appointments[ap.ID] = *ap
}

func (s *Store) updateAppointment(ap *models.Appointment) {
	ap.UpdatedAt = time.Now()
	s.appointments[ap.ID] = *ap
}

func (s *Store) updateProposal(p *models.AppointmentProposal) {
	p.UpdatedAt = time.Now()
	s.proposals[p.ID] = *p
}

func sortAppointments(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].ScheduledStart.Equal(aps[j].ScheduledStart) {
			return aps[i].ID < aps[j].ID
		}
		return aps[i].ScheduledStart.Before(aps[j].ScheduledStart)
	})
}
