package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ProposalCreated   = "proposal.created"
	ProposalAccepted  = "proposal.accepted"
	ProposalRejected  = "proposal.rejected"
	ProposalCancelled = "proposal.cancelled"
	ProposalExpired   = "proposal.expired"

	AppointmentCreated     = "appointment.created"
	AppointmentRescheduled = "appointment.rescheduled"
	AppointmentCancelled   = "appointment.cancelled"
	AppointmentCompleted   = "appointment.completed"
	AppointmentNoShow      = "appointment.no_show"

	MessageSent = "message.sent"

	LeadAccessGranted = "lead.access_granted"
)

type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Entity     string         `json:"entity"`
	EntityID   uint           `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`

	ProfessionalID uint `json:"professional_id"`
	CustomerID     uint `json:"customer_id,omitempty"`
}

func New(typ, entity string, entityID uint, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		OccurredAt: at.UTC(),
		Entity:     entity,
		EntityID:   entityID,
	}
}

func (e Event) For(professionalID, customerID uint) Event {
	e.ProfessionalID = professionalID
	e.CustomerID = customerID
	return e
}

func (e Event) With(key string, value any) Event {
	payload := make(map[string]any, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}

// Publisher entrega o evento para fora do processo (broker, audit).
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Emitter é o lado dos use cases: fire-and-forget.
type Emitter interface {
	Emit(ev Event)
}

type Discard struct{}

func (Discard) Emit(Event) {}

// Recorder guarda os eventos emitidos; usado em testes.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
