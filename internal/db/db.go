package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mester-scheduler/internal/config"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.WorkingHoursConfig{},
		&models.WorkingDay{},
		&models.Appointment{},
		&models.AppointmentProposal{},
		&models.LeadAccessRecord{},
		&models.Thread{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	// configs antigas sem fuso herdam o padrão
	if err := db.Exec(
		`UPDATE working_hours_configs SET timezone = ? WHERE timezone IS NULL OR timezone = ''`,
		cfg.DefaultTimezone,
	).Error; err != nil {
		return nil, fmt.Errorf("failed to backfill timezone: %w", err)
	}

	return db, nil
}
