package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one direct message between two user ids. There is no
// conversation entity; a conversation is every message exchanged between
// the same pair of ids.
type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"column:sender_id;size:36;not null;index" json:"sender_id"`
	ReceiverID string    `gorm:"column:receiver_id;size:36;not null;index" json:"receiver_id"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	Timestamp  time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	Read       bool      `gorm:"column:read;default:false" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	return nil
}
