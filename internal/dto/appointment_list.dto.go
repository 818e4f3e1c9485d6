package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID             uint            `json:"id"`
	ProposalID     *uint           `json:"proposal_id,omitempty"`
	CustomerID     uint            `json:"customer_id"`
	JobID          uint            `json:"job_id"`
	ScheduledStart time.Time       `json:"scheduled_start"`
	ScheduledEnd   time.Time       `json:"scheduled_end"`
	Status         string          `json:"status"`
	Location       string          `json:"location"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
}

func NewAppointmentList(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, AppointmentListDTO{
			ID:             ap.ID,
			ProposalID:     ap.ProposalID,
			CustomerID:     ap.CustomerID,
			JobID:          ap.JobID,
			ScheduledStart: ap.ScheduledStart.In(loc),
			ScheduledEnd:   ap.ScheduledEnd.In(loc),
			Status:         ap.Status,
			Location:       ap.Location,
			Price:          ap.Price,
			Currency:       ap.Currency,
		})
	}
	return out
}
