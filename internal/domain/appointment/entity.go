package appointment

import (
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel registra quem cancelou; o agendamento nunca é apagado.
func Cancel(ap *models.Appointment, by identity.Role, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	if by == identity.RoleMester {
		ap.Status = string(StatusCancelledByMester)
	} else {
		ap.Status = string(StatusCancelledByCustomer)
	}
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}
	if now.Before(ap.ScheduledStart) {
		return httperr.ErrValidation("appointment_not_started")
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// Reschedule move o intervalo mantendo a duração.
func Reschedule(ap *models.Appointment, start time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	duration := ap.Duration()
	ap.ScheduledStart = start
	ap.ScheduledEnd = start.Add(duration)
	ap.Status = string(StatusRescheduled)
	return nil
}

// IntervalOf devolve o intervalo ocupado pelo agendamento, sem buffer.
func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.ScheduledStart, End: ap.ScheduledEnd}
}

// ParticipantRole diz se userID participa do agendamento e com qual papel.
func ParticipantRole(ap *models.Appointment, userID uint) (identity.Role, bool) {
	switch userID {
	case ap.ProfessionalID:
		return identity.RoleMester, true
	case ap.CustomerID:
		return identity.RoleCustomer, true
	}
	return "", false
}
