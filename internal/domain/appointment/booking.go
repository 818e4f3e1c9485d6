package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

// AssertNoConflict aplica o buffer dos dois lados de cada agendamento ativo.
// excludeID permite revalidar um agendamento que está sendo remarcado.
func AssertNoConflict(
	candidate Interval,
	existing []models.Appointment,
	buffer time.Duration,
	excludeID uint,
) error {

	if !candidate.End.After(candidate.Start) {
		return httperr.ErrValidation("invalid_interval")
	}

	for i := range existing {
		ap := &existing[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !IsActive(Status(ap.Status)) {
			continue
		}
		if candidate.Overlaps(IntervalOf(ap).Expand(buffer)) {
			return httperr.ErrConflict("slot_unavailable")
		}
	}

	return nil
}

// Book é o check-and-insert atômico: trava a agenda do mester, relê os
// agendamentos ativos e só então grava.
func Book(
	ctx context.Context,
	tx Tx,
	ap *models.Appointment,
	buffer time.Duration,
) error {

	if err := tx.LockSchedule(ctx, ap.ProfessionalID); err != nil {
		return err
	}

	if err := AssertSlotFree(ctx, tx, ap, buffer); err != nil {
		return err
	}

	return tx.CreateAppointment(ctx, ap)
}

// AssertSlotFree relê os ativos em volta do intervalo de ap. Exige a agenda
// já travada.
func AssertSlotFree(
	ctx context.Context,
	tx Tx,
	ap *models.Appointment,
	buffer time.Duration,
) error {

	candidate := IntervalOf(ap)
	window := candidate.Expand(buffer)

	existing, err := tx.ListActiveAppointments(
		ctx,
		ap.ProfessionalID,
		window.Start,
		window.End,
	)
	if err != nil {
		return err
	}

	return AssertNoConflict(candidate, existing, buffer, ap.ID)
}

// Transition trava a agenda de professionalID, relê o agendamento e aplica
// apply sobre essa cópia. O status validado é sempre o gravado no banco.
func Transition(
	ctx context.Context,
	tx Tx,
	professionalID uint,
	appointmentID uint,
	apply func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	if err := tx.LockSchedule(ctx, professionalID); err != nil {
		return nil, err
	}

	ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.ProfessionalID != professionalID {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := apply(ap); err != nil {
		return nil, err
	}

	if err := tx.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}
