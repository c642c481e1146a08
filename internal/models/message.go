package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Message kinds. Anything else collapses to text on persist.
const (
	KindText  = "text"
	KindImage = "image"
	KindVoice = "voice"
	KindVideo = "video"
)

// Message is a persisted chat message. Exactly one of ReceiverID or
// RoomID is set; the dispatcher validates that before the row is ever
// created, so no database-level check is repeated here.
type Message struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	SenderID   string  `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID *string `gorm:"type:uuid;index" json:"receiver_id,omitempty"`
	RoomID     *string `gorm:"type:uuid;index" json:"room_id,omitempty"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	Kind       string  `gorm:"type:text;not null;default:text" json:"kind"`
	// ReadBy holds the IDs of users who fetched this message via history.
	ReadBy    pq.StringArray `gorm:"type:text[]" json:"read_by"`
	CreatedAt time.Time      `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if !ValidKind(m.Kind) {
		m.Kind = KindText
	}
	// Keep the column non-NULL so array predicates behave.
	if m.ReadBy == nil {
		m.ReadBy = pq.StringArray{}
	}
	return
}

// ValidKind reports whether k is one of the supported message kinds.
func ValidKind(k string) bool {
	switch k {
	case KindText, KindImage, KindVoice, KindVideo:
		return true
	}
	return false
}
