package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session represents one authenticated browser session. A session is valid
// while the current time is before ExpiresAt; expiry is fixed at creation
// and never extended by activity. Expired rows are ignored at lookup time
// rather than purged.
type Session struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"userId" gorm:"type:char(36);not null;index"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate sets a UUID before creating the record.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
