package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint  `gorm:"index;not null" json:"professional_id"`
	CustomerID     uint  `gorm:"index" json:"customer_id"`
	JobID          uint  `gorm:"index" json:"job_id"`
	ProposalID     *uint `json:"proposal_id,omitempty"`

	ScheduledStart time.Time `gorm:"index;not null" json:"scheduled_start"`
	ScheduledEnd   time.Time `gorm:"not null" json:"scheduled_end"`

	Status string `gorm:"size:30;default:'confirmed'" json:"status"`

	Location string          `gorm:"size:255" json:"location"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Currency string          `gorm:"size:3" json:"currency"`
	Notes    string          `gorm:"size:500" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) Duration() time.Duration {
	return a.ScheduledEnd.Sub(a.ScheduledStart)
}
