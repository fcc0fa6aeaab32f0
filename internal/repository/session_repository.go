package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"agentdesk/internal/model"
)

// SessionRepository defines session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// FindValidByToken returns the session matching token whose expiry is
	// strictly after now, or (nil, nil) when no such row exists.
	FindValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error)
	// DeleteByToken removes the session matching token. Deleting an absent
	// token is not an error.
	DeleteByToken(ctx context.Context, token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
}
