package appointment

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

// ======================================================
// CANCEL
// ======================================================

// CancelAppointment pode ser chamado pelos dois lados; o status final
// registra quem cancelou.
type CancelAppointment struct {
	repo   domain.Repository
	events events.Emitter
	clock  timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	emitter events.Emitter,
	clock timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, events: emitter, clock: clock}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	role, ok := domain.ParticipantRole(ap, actor.UserID)
	if !ok || role != actor.Role {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	now := uc.clock.Now()
	ap, err = transition(ctx, uc.repo, ap, func(locked *models.Appointment) error {
		return domain.Cancel(locked, role, now)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Emit(appointmentEvent(events.AppointmentCancelled, ap, now))
	return ap, nil
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	repo   domain.Repository
	events events.Emitter
	clock  timezone.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	emitter events.Emitter,
	clock timezone.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, events: emitter, clock: clock}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	ap, err = transition(ctx, uc.repo, ap, func(locked *models.Appointment) error {
		return domain.Complete(locked, now)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Emit(appointmentEvent(events.AppointmentCompleted, ap, now))
	return ap, nil
}

// ======================================================
// NO-SHOW
// ======================================================

type MarkNoShow struct {
	repo   domain.Repository
	events events.Emitter
	clock  timezone.Clock
}

func NewMarkNoShow(
	repo domain.Repository,
	emitter events.Emitter,
	clock timezone.Clock,
) *MarkNoShow {
	return &MarkNoShow{repo: repo, events: emitter, clock: clock}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	ap, err = transition(ctx, uc.repo, ap, func(locked *models.Appointment) error {
		return domain.MarkNoShow(locked, now)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Emit(appointmentEvent(events.AppointmentNoShow, ap, now))
	return ap, nil
}

// ======================================================
// RESCHEDULE
// ======================================================

type RescheduleInput struct {
	Date string
	Time string
}

// RescheduleAppointment revalida expediente e conflito dentro da mesma
// transação, ignorando o próprio agendamento.
type RescheduleAppointment struct {
	repo    domain.Repository
	events  events.Emitter
	metrics *metrics.Metrics
	log     *slog.Logger
	clock   timezone.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	emitter events.Emitter,
	m *metrics.Metrics,
	log *slog.Logger,
	clock timezone.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		events:  emitter,
		metrics: m,
		log:     log,
		clock:   clock,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uint,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := loadOwned(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.repo.GetWorkingHours(ctx, actor.UserID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.ErrValidation("working_hours_not_configured")
		}
		return nil, err
	}

	start, err := parseStart(cfg, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if start.Before(now) {
		return nil, httperr.ErrValidation("date_in_past")
	}

	buffer := time.Duration(cfg.BufferMinutes) * time.Minute
	var moved *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Tx) error {
		var err error
		moved, err = domain.Transition(ctx, tx, ap.ProfessionalID, ap.ID, func(locked *models.Appointment) error {
			if err := domain.Reschedule(locked, start); err != nil {
				return err
			}
			if !domain.IsWithinWorkingHours(cfg, locked.ScheduledStart, locked.ScheduledEnd) {
				return httperr.ErrValidation("outside_working_hours")
			}
			return domain.AssertSlotFree(ctx, tx, locked, buffer)
		})
		return err
	})
	if err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.metrics.BookingConflict()
			uc.log.WarnContext(ctx, "reschedule conflict",
				"appointment_id", ap.ID,
				"start", start,
			)
		}
		return nil, err
	}

	uc.events.Emit(appointmentEvent(events.AppointmentRescheduled, moved, now))
	return moved, nil
}
