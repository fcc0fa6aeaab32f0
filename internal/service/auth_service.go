package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agentdesk/internal/auth"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

// SessionLifetime is fixed at session creation. There is no sliding
// expiration: activity never extends a session.
const SessionLifetime = 7 * 24 * time.Hour

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same value covers an unknown email and a wrong password so the
	// response never reveals which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when signing up with an email already
	// on file.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// AuthService issues, resolves and revokes cookie sessions tied to
// password-verified identities.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*model.User, string, error)
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)
	GetSession(ctx context.Context, token string) (*model.User, *model.Session, error)
	SignOut(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	tx       repository.TxRunner
	hasher   *auth.Hasher
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	tx repository.TxRunner,
	hasher *auth.Hasher,
) AuthService {
	return &authService{
		users:    users,
		accounts: accounts,
		sessions: sessions,
		tx:       tx,
		hasher:   hasher,
		now:      time.Now,
	}
}

// SignUp registers a new identity and immediately establishes a session.
// The user, credential and session rows are inserted in one transaction, so
// a failure part-way leaves no orphaned rows.
func (s *authService) SignUp(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	user := &model.User{
		Name:  name,
		Email: email,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.AuthRepositories) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		account := &model.Account{
			AccountID:  email,
			ProviderID: model.ProviderCredential,
			UserID:     user.ID,
			Password:   s.hasher.Hash(password),
		}
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		session := &model.Session{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: s.now().Add(SessionLifetime),
		}
		if err := repos.Sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// SignIn authenticates an existing identity and establishes a new session.
// Prior sessions for the user are left untouched; concurrent sessions are
// permitted without bound.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	account, err := s.accounts.FindByUserAndProvider(ctx, user.ID, model.ProviderCredential)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find credential: %w", err)
	}

	if !s.hasher.Verify(password, account.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	session := &model.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(SessionLifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return user, token, nil
}

// GetSession resolves a bearer token to its user and session if and only if
// the session has not expired. A missing or expired session returns
// (nil, nil, nil): an anonymous visitor is an expected outcome, not an
// error. The lookup is side-effect free.
func (s *authService) GetSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	session, err := s.sessions.FindValidByToken(ctx, token, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil, nil
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("find session user: %w", err)
	}

	return user, session, nil
}

// SignOut deletes the session matching token. Signing out an absent or
// already-revoked token succeeds silently.
func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
