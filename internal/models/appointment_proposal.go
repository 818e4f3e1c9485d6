package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentProposal é uma oferta de horário/preço trocada dentro de um thread.
// Estados terminais ficam gravados para histórico.
type AppointmentProposal struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ThreadID uint `gorm:"index;not null" json:"thread_id"`

	ProfessionalID uint `gorm:"index;not null" json:"professional_id"`
	CustomerID     uint `gorm:"index;not null" json:"customer_id"`
	JobID          uint `json:"job_id"`

	AuthorID   uint   `json:"author_id"`
	AuthorRole string `gorm:"size:20" json:"author_role"`

	ProposedStart   time.Time       `gorm:"index;not null" json:"proposed_start"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Currency        string          `gorm:"size:3" json:"currency"`
	Location        string          `gorm:"size:255" json:"location"`
	Notes           string          `gorm:"size:500" json:"notes"`
	OfferMessage    string          `gorm:"type:text" json:"offer_message"`

	Status          string     `gorm:"size:20;index;default:'proposed'" json:"status"`
	ResponseMessage string     `gorm:"type:text" json:"response_message"`
	RespondedAt     *time.Time `json:"responded_at"`
	AppointmentID   *uint      `json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *AppointmentProposal) ProposedEnd() time.Time {
	return p.ProposedStart.Add(time.Duration(p.DurationMinutes) * time.Minute)
}
