package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type Repository interface {
	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
	) (*models.WorkingHoursConfig, error)

	SaveWorkingHours(
		ctx context.Context,
		cfg *models.WorkingHoursConfig,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// ListActiveAppointments devolve agendamentos confirmed/rescheduled que
	// intersectam [start, end).
	ListActiveAppointments(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Write-time serialization --------
	Transaction(
		ctx context.Context,
		fn func(tx Tx) error,
	) error
}

// Tx roda dentro de uma transação; LockSchedule é o ponto de serialização
// por mester e precisa ser chamado antes de qualquer escrita na agenda.
// Mudança de status só acontece aqui, sobre a linha relida com lock.
type Tx interface {
	LockSchedule(
		ctx context.Context,
		professionalID uint,
	) error

	GetAppointmentForUpdate(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	ListActiveAppointments(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
