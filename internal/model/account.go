package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderCredential tags password-backed accounts. It is the only provider
// this service supports.
const ProviderCredential = "credential"

// Account holds the password material bound to a user for one authentication
// provider. Exactly one row exists per (user, provider).
type Account struct {
	ID         string    `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID  string    `json:"accountId" gorm:"size:255;not null"`
	ProviderID string    `json:"providerId" gorm:"size:64;not null;index:idx_accounts_user_provider"`
	UserID     string    `json:"userId" gorm:"type:char(36);not null;index:idx_accounts_user_provider"`
	Password   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// BeforeCreate sets a UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
