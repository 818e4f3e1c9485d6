package appointment

import (
	"github.com/BruksfildServices01/mester-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mester-scheduler/internal/models"
	"github.com/BruksfildServices01/mester-scheduler/internal/timezone"
	"github.com/BruksfildServices01/mester-scheduler/internal/validators"
)

const (
	DefaultDurationMinutes = 60
	DefaultMaxAdvanceDays  = 30
)

// ValidateWorkingHours garante os invariantes da configuração antes de gravar.
func ValidateWorkingHours(cfg *models.WorkingHoursConfig) error {
	if cfg.BufferMinutes < 0 {
		return httperr.ErrValidation("invalid_buffer_minutes")
	}
	if cfg.MinAdvanceHours < 0 {
		return httperr.ErrValidation("invalid_min_advance_hours")
	}
	if cfg.MaxAdvanceDays < 1 {
		return httperr.ErrValidation("invalid_max_advance_days")
	}
	if cfg.DefaultDurationMinutes <= 0 {
		return httperr.ErrValidation("invalid_default_duration")
	}
	if cfg.Timezone != "" && !timezone.IsValid(cfg.Timezone) {
		return httperr.ErrValidation("invalid_timezone")
	}

	seen := map[int]bool{}
	for _, d := range cfg.Days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return httperr.ErrValidation("invalid_weekday")
		}
		if seen[d.Weekday] {
			return httperr.ErrValidation("duplicated_weekday")
		}
		seen[d.Weekday] = true

		start, err := validators.ParseClock(d.StartTime)
		if err != nil {
			return httperr.ErrValidation("invalid_start_time")
		}
		end, err := validators.ParseClock(d.EndTime)
		if err != nil {
			return httperr.ErrValidation("invalid_end_time")
		}
		if start >= end {
			return httperr.ErrValidation("start_after_end")
		}
	}

	return nil
}

// ApplyDefaults preenche campos opcionais vindos zerados da API.
func ApplyDefaults(cfg *models.WorkingHoursConfig) {
	if cfg.DefaultDurationMinutes == 0 {
		cfg.DefaultDurationMinutes = DefaultDurationMinutes
	}
	if cfg.MaxAdvanceDays == 0 {
		cfg.MaxAdvanceDays = DefaultMaxAdvanceDays
	}
}
