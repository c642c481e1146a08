package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. The gateway only reads users
// (for the sender projection on outbound messages) and updates their
// presence columns; account management lives in the CRUD service.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Avatar   string `json:"avatar"`
	// Status is the last persisted presence value ("online"/"offline").
	Status string `gorm:"default:offline" json:"status"`
	// LastSeen is stamped when the user's last connection goes away.
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// BeforeCreate generates a UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Profile is the minimal projection of a sender attached to every
// outbound message event.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Profile returns the projection for this user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
