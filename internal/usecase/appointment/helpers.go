package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
)

const entity = "appointment"

func requireMester(actor identity.Actor) error {
	if !actor.IsMester() {
		return httperr.ErrForbidden("mester_only")
	}
	return nil
}

// loadOwned devolve o agendamento só se actor for o mester dono dele.
func loadOwned(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	if err := requireMester(actor); err != nil {
		return nil, err
	}

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.ProfessionalID != actor.UserID {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return ap, nil
}

// transition aplica apply sobre a cópia relida com lock dentro da
// transação; ap só fornece ids, o status dele pode estar velho.
func transition(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	apply func(locked *models.Appointment) error,
) (*models.Appointment, error) {

	var out *models.Appointment
	err := repo.Transaction(ctx, func(tx domain.Tx) error {
		var err error
		out, err = domain.Transition(ctx, tx, ap.ProfessionalID, ap.ID, apply)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// parseStart interpreta "YYYY-MM-DD" + "HH:MM" no fuso do mester.
func parseStart(cfg *models.WorkingHoursConfig, date, hm string) (time.Time, error) {
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		date+" "+hm,
		timezone.Location(cfg.Timezone),
	)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time")
	}
	return start, nil
}

func appointmentEvent(typ string, ap *models.Appointment, at time.Time) events.Event {
	ev := events.New(typ, entity, ap.ID, at).
		For(ap.ProfessionalID, ap.CustomerID).
		With("status", ap.Status).
		With("scheduled_start", ap.ScheduledStart.UTC())
	if ap.ProposalID != nil {
		ev = ev.With("proposal_id", *ap.ProposalID)
	}
	return ev
}
