package memory

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type AppointmentRepository struct {
	s *Store
}

func isActive(status string) bool {
	return domain.IsActive(domain.Status(status))
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
) (*models.WorkingHoursConfig, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cfg, ok := r.s.workingHours[professionalID]
	if !ok {
		return nil, httperr.ErrNotFound("working_hours_not_found")
	}
	cfg.Days = append([]models.WorkingDay(nil), cfg.Days...)
	return &cfg, nil
}

func (r *AppointmentRepository) SaveWorkingHours(
	ctx context.Context,
	cfg *models.WorkingHoursConfig,
) error {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	if existing, ok := r.s.workingHours[cfg.ProfessionalID]; ok {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	} else {
		cfg.ID = r.s.nextID()
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	for i := range cfg.Days {
		cfg.Days[i].ConfigID = cfg.ID
		if cfg.Days[i].ID == 0 {
			cfg.Days[i].ID = r.s.nextID()
		}
	}

	stored := *cfg
	stored.Days = append([]models.WorkingDay(nil), cfg.Days...)
	r.s.workingHours[cfg.ProfessionalID] = stored
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[appointmentID]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentRepository) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.activeAppointments(professionalID, start, end, isActive), nil
}

func (r *AppointmentRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.s.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !ap.ScheduledStart.Before(start) && ap.ScheduledStart.Before(end) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (r *AppointmentRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) error {
	return r.s.inTx(func() error {
		return fn(&tx{s: r.s})
	})
}

var _ domain.Repository = (*AppointmentRepository)(nil)
