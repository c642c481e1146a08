package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room represents a named multi-party channel. The gateway treats
// rooms as opaque identities; membership authorization is decided by
// the CRUD service before a join intent ever reaches the gateway.
type Room struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"index" json:"owner_id"`
	CreatedAt   time.Time
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
