package models

import "time"

// LeadAccessRecord existe somente depois de um pagamento confirmado.
type LeadAccessRecord struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex:idx_lead_access;not null" json:"professional_id"`
	JobID          uint `gorm:"uniqueIndex:idx_lead_access;not null" json:"job_id"`

	Granted   bool      `gorm:"default:true" json:"granted"`
	GrantedAt time.Time `json:"granted_at"`

	Provider  string `gorm:"size:30" json:"provider"`
	Reference string `gorm:"size:100" json:"reference"`
}
