package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	professionalID uint,
) (*models.WorkingHoursConfig, error) {

	var cfg models.WorkingHoursConfig
	if err := r.db.WithContext(ctx).
		Preload("Days").
		Where("professional_id = ?", professionalID).
		First(&cfg).Error; err != nil {
		return nil, notFound(err, "working_hours_not_found")
	}
	return &cfg, nil
}

// SaveWorkingHours substitui a configuração inteira (dias incluídos).
func (r *AppointmentGormRepository) SaveWorkingHours(
	ctx context.Context,
	cfg *models.WorkingHoursConfig,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WorkingHoursConfig
		err := tx.Where("professional_id = ?", cfg.ProfessionalID).First(&existing).Error

		switch {
		case err == nil:
			cfg.ID = existing.ID
			cfg.CreatedAt = existing.CreatedAt
			if err := tx.Where("config_id = ?", existing.ID).Delete(&models.WorkingDay{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			cfg.ID = 0
		default:
			return err
		}

		days := cfg.Days
		cfg.Days = nil
		if err := tx.Save(cfg).Error; err != nil {
			return err
		}

		for i := range days {
			days[i].ID = 0
			days[i].ConfigID = cfg.ID
		}
		if len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return err
			}
		}
		cfg.Days = days
		return nil
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return listActive(r.db.WithContext(ctx), professionalID, start, end)
}

func listActive(
	db *gorm.DB,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := db.
		Where(
			"professional_id = ? AND status IN ? AND scheduled_start < ? AND scheduled_end > ?",
			professionalID,
			domain.ActiveStatuses(),
			end,
			start,
		).
		Order("scheduled_start ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND scheduled_start >= ? AND scheduled_start < ?",
			professionalID,
			start,
			end,
		).
		Order("scheduled_start ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
