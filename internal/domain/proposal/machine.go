package proposal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

const DefaultCurrency = "HUF"

// ===============================
// Lazy expiry
// ===============================

// EffectiveStatus nunca apresenta como "proposed" uma proposta cujo horário já passou.
func EffectiveStatus(p *models.AppointmentProposal, now time.Time) Status {
	s := Status(p.Status)
	if s == StatusProposed && !now.Before(p.ProposedStart) {
		return StatusExpired
	}
	return s
}

// Resolve grava o status efetivo no próprio registro. Devolve true se mudou.
func Resolve(p *models.AppointmentProposal, now time.Time) bool {
	eff := EffectiveStatus(p, now)
	if string(eff) == p.Status {
		return false
	}
	p.Status = string(eff)
	return true
}

// ===============================
// Creation
// ===============================

type Draft struct {
	ProposedStart   time.Time
	DurationMinutes int
	Price           decimal.Decimal
	Currency        string
	Location        string
	Notes           string
	OfferMessage    string
}

// New monta uma proposta para o thread. A checagem de data é só de criação;
// a validade real é reavaliada no aceite.
func New(
	thread *models.Thread,
	author identity.Actor,
	d Draft,
	now time.Time,
) (*models.AppointmentProposal, error) {

	if !thread.HasParticipant(author.UserID) {
		return nil, httperr.ErrForbidden("not_thread_participant")
	}
	if author.IsMester() != (thread.ProfessionalID == author.UserID) {
		return nil, httperr.ErrForbidden("role_mismatch")
	}
	if d.DurationMinutes <= 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}
	if d.Price.IsNegative() {
		return nil, httperr.ErrValidation("invalid_price")
	}
	if d.ProposedStart.Before(now) {
		return nil, httperr.ErrValidation("proposed_date_in_past")
	}

	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, httperr.ErrValidation("invalid_currency")
	}

	return &models.AppointmentProposal{
		ThreadID:        thread.ID,
		ProfessionalID:  thread.ProfessionalID,
		CustomerID:      thread.CustomerID,
		JobID:           thread.JobID,
		AuthorID:        author.UserID,
		AuthorRole:      string(author.Role),
		ProposedStart:   d.ProposedStart,
		DurationMinutes: d.DurationMinutes,
		Price:           d.Price,
		Currency:        currency,
		Location:        d.Location,
		Notes:           d.Notes,
		OfferMessage:    d.OfferMessage,
		Status:          string(InitialStatus()),
	}, nil
}

// ===============================
// Guards
// ===============================

func isParticipant(p *models.AppointmentProposal, userID uint) bool {
	return p.ProfessionalID == userID || p.CustomerID == userID
}

// canRespond: só a contraparte do autor aceita ou rejeita.
func canRespond(p *models.AppointmentProposal, actor identity.Actor) error {
	if !isParticipant(p, actor.UserID) {
		return httperr.ErrNotFound("proposal_not_found")
	}
	if actor.UserID == p.AuthorID {
		return httperr.ErrForbidden("not_counterparty")
	}
	return nil
}

func requireProposed(p *models.AppointmentProposal, now time.Time) error {
	switch EffectiveStatus(p, now) {
	case StatusProposed:
		return nil
	case StatusExpired:
		return httperr.ErrConflict("proposal_expired")
	default:
		return httperr.ErrConflict("invalid_transition")
	}
}

// GuardAccept valida autoria e estado. O conflito de agenda é checado
// depois, dentro da transação.
func GuardAccept(p *models.AppointmentProposal, actor identity.Actor, now time.Time) error {
	if err := canRespond(p, actor); err != nil {
		return err
	}
	return requireProposed(p, now)
}

// ===============================
// Transitions
// ===============================

func MarkAccepted(p *models.AppointmentProposal, appointmentID uint, response string, now time.Time) {
	p.Status = string(StatusAccepted)
	p.AppointmentID = &appointmentID
	p.ResponseMessage = response
	p.RespondedAt = &now
}

func Reject(p *models.AppointmentProposal, actor identity.Actor, response string, now time.Time) error {
	if err := canRespond(p, actor); err != nil {
		return err
	}
	if err := requireProposed(p, now); err != nil {
		return err
	}

	p.Status = string(StatusRejected)
	p.ResponseMessage = response
	p.RespondedAt = &now
	return nil
}

func Cancel(p *models.AppointmentProposal, actor identity.Actor, now time.Time) error {
	if !isParticipant(p, actor.UserID) {
		return httperr.ErrNotFound("proposal_not_found")
	}
	if actor.UserID != p.AuthorID {
		return httperr.ErrForbidden("not_author")
	}
	if err := requireProposed(p, now); err != nil {
		return err
	}

	p.Status = string(StatusCancelled)
	return nil
}

// ToAppointment materializa o agendamento de uma proposta aceita.
func ToAppointment(p *models.AppointmentProposal) *models.Appointment {
	proposalID := p.ID
	return &models.Appointment{
		ProfessionalID: p.ProfessionalID,
		CustomerID:     p.CustomerID,
		JobID:          p.JobID,
		ProposalID:     &proposalID,
		ScheduledStart: p.ProposedStart,
		ScheduledEnd:   p.ProposedEnd(),
		Status:         string(appointment.InitialStatus()),
		Location:       p.Location,
		Price:          p.Price,
		Currency:       p.Currency,
		Notes:          p.Notes,
	}
}
