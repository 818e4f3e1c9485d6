package appointment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateDirectAppointmentInput struct {
	CustomerID uint
	JobID      uint

	Date            string
	Time            string
	DurationMinutes int

	Price    decimal.Decimal
	Currency string
	Location string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

// CreateDirectAppointment: reserva feita pelo próprio mester, fora do fluxo
// de propostas. Mesmas regras de expediente e conflito do aceite.
type CreateDirectAppointment struct {
	repo    domain.Repository
	events  events.Emitter
	metrics *metrics.Metrics
	log     *slog.Logger
	clock   timezone.Clock
}

func NewCreateDirectAppointment(
	repo domain.Repository,
	emitter events.Emitter,
	m *metrics.Metrics,
	log *slog.Logger,
	clock timezone.Clock,
) *CreateDirectAppointment {
	return &CreateDirectAppointment{
		repo:    repo,
		events:  emitter,
		metrics: m,
		log:     log,
		clock:   clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateDirectAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateDirectAppointmentInput,
) (*models.Appointment, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}
	if in.CustomerID == 0 {
		return nil, httperr.ErrValidation("invalid_customer")
	}
	if in.Price.IsNegative() {
		return nil, httperr.ErrValidation("invalid_price")
	}

	// --------------------------------------------------
	// 1️⃣ Configuração do mester
	// --------------------------------------------------
	cfg, err := uc.repo.GetWorkingHours(ctx, actor.UserID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.ErrValidation("working_hours_not_configured")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no fuso do mester
	// --------------------------------------------------
	start, err := parseStart(cfg, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if start.Before(now) {
		return nil, httperr.ErrValidation("date_in_past")
	}

	minutes := in.DurationMinutes
	if minutes == 0 {
		minutes = cfg.DefaultDurationMinutes
	}
	if minutes < 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}
	end := start.Add(time.Duration(minutes) * time.Minute)

	// --------------------------------------------------
	// 3️⃣ Expediente
	// --------------------------------------------------
	if !domain.IsWithinWorkingHours(cfg, start, end) {
		return nil, httperr.ErrValidation("outside_working_hours")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "HUF"
	}

	ap := &models.Appointment{
		ProfessionalID: actor.UserID,
		CustomerID:     in.CustomerID,
		JobID:          in.JobID,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Status:         string(domain.InitialStatus()),
		Location:       in.Location,
		Price:          in.Price,
		Currency:       currency,
		Notes:          in.Notes,
	}

	// --------------------------------------------------
	// 4️⃣ Check-and-insert atômico
	// --------------------------------------------------
	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	if err := uc.repo.Transaction(ctx, func(tx domain.Tx) error {
		return domain.Book(ctx, tx, ap, buffer)
	}); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.metrics.BookingConflict()
			uc.log.WarnContext(ctx, "direct booking conflict",
				"professional_id", actor.UserID,
				"start", start,
			)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Notificação (best-effort)
	// --------------------------------------------------
	uc.events.Emit(appointmentEvent(events.AppointmentCreated, ap, now))

	return ap, nil
}
