package repository

import (
	"context"

	"gorm.io/gorm"
)

// AuthRepositories bundles the repositories touched by sign-up so its three
// dependent inserts can share one transaction.
type AuthRepositories struct {
	Users    UserRepository
	Accounts AccountRepository
	Sessions SessionRepository
}

// TxRunner executes a function inside a single database transaction, handing
// it transaction-scoped repositories.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos AuthRepositories) error) error
}

type txRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a TxRunner over the given DB.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos AuthRepositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, AuthRepositories{
			Users:    NewUserRepository(tx),
			Accounts: NewAccountRepository(tx),
			Sessions: NewSessionRepository(tx),
		})
	})
}
