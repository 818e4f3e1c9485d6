package models

import "time"

type Message struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ThreadID   uint   `gorm:"index;not null" json:"thread_id"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `gorm:"index" json:"receiver_id"`
	SenderRole string `gorm:"size:20" json:"sender_role"`

	// calculados uma única vez na criação
	RawContent          string `gorm:"type:text" json:"-"`
	StoredContent       string `gorm:"type:text" json:"stored_content"`
	ContainsContactInfo bool   `json:"contains_contact_info"`

	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
