package models

import "time"

// WorkingHoursConfig é a configuração de agenda de um mester.
// Dia sem WorkingDay correspondente = fechado.
type WorkingHoursConfig struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex;not null" json:"professional_id"`

	BufferMinutes          int    `gorm:"default:0" json:"buffer_minutes"`
	MinAdvanceHours        int    `gorm:"default:0" json:"min_advance_hours"`
	MaxAdvanceDays         int    `gorm:"default:30" json:"max_advance_days"`
	DefaultDurationMinutes int    `gorm:"default:60" json:"default_duration_minutes"`
	AllowOnlineBooking     bool   `gorm:"not null" json:"allow_online_booking"`
	Timezone               string `gorm:"size:64" json:"timezone"`

	Days []WorkingDay `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE" json:"days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkingDay struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	ConfigID uint `gorm:"index" json:"-"`

	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
}

func (c *WorkingHoursConfig) Day(weekday time.Weekday) *WorkingDay {
	for i := range c.Days {
		if c.Days[i].Weekday == int(weekday) {
			return &c.Days[i]
		}
	}
	return nil
}
