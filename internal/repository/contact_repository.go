package repository

import (
	"context"

	"gorm.io/gorm"

	"agentdesk/internal/model"
)

// ContactRepository defines contact form persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}
