package repository

import (
	"context"

	"gorm.io/gorm"

	"agentdesk/internal/model"
)

// AccountRepository defines credential persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByUserAndProvider(ctx context.Context, userID, providerID string) (*model.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByUserAndProvider(ctx context.Context, userID, providerID string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
