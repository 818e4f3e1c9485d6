package models

import "time"

// Thread: conversa de um job entre um cliente e um mester.
type Thread struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	JobID          uint `gorm:"uniqueIndex:idx_thread_job_pro;not null" json:"job_id"`
	ProfessionalID uint `gorm:"uniqueIndex:idx_thread_job_pro;not null" json:"professional_id"`
	CustomerID     uint `gorm:"index;not null" json:"customer_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Thread) HasParticipant(userID uint) bool {
	return t.ProfessionalID == userID || t.CustomerID == userID
}
