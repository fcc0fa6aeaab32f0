package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"agentdesk/internal/auth"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByUserAndProvider(ctx context.Context, userID, providerID string) (*model.Account, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// memSessionRepository stores sessions in memory and applies the same
// validity rule as the SQL lookup: a session resolves only while its
// expiry is strictly after the lookup time.
type memSessionRepository struct {
	sessions map[string]*model.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: map[string]*model.Session{}}
}

func (r *memSessionRepository) Create(ctx context.Context, session *model.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *memSessionRepository) FindValidByToken(ctx context.Context, token string, now time.Time) (*model.Session, error) {
	session, ok := r.sessions[token]
	if !ok || !session.ExpiresAt.After(now) {
		return nil, nil
	}
	return session, nil
}

func (r *memSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

// fakeTxRunner runs the transaction function directly with the given
// repositories, without a database.
type fakeTxRunner struct {
	repos repository.AuthRepositories
	err   error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.AuthRepositories) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, f.repos)
}

func newTestAuthService(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository, now time.Time) AuthService {
	tx := &fakeTxRunner{repos: repository.AuthRepositories{
		Users:    users,
		Accounts: accounts,
		Sessions: sessions,
	}}
	svc := NewAuthService(users, accounts, sessions, tx, auth.NewHasher("test-secret")).(*authService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAuthService_SignUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockAccountRepository, *MockSessionRepository)
		expectedError error
	}{
		{
			name:  "successful sign up",
			email: "new@example.com",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				accounts.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
				sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
			},
		},
		{
			name:  "duplicate email is rejected before any insert",
			email: "existing@example.com",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			accounts := new(MockAccountRepository)
			sessions := new(MockSessionRepository)
			tt.setupMock(users, accounts, sessions)

			svc := newTestAuthService(users, accounts, sessions, now)
			user, token, err := svc.SignUp(context.Background(), "Test User", tt.email, "password123")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, token)
			}

			users.AssertExpectations(t)
			accounts.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignUp_StoresCredentialAndExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hasher := auth.NewHasher("test-secret")

	users := new(MockUserRepository)
	accounts := new(MockAccountRepository)
	sessions := new(MockSessionRepository)

	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	var createdAccount *model.Account
	accounts.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).
		Run(func(args mock.Arguments) { createdAccount = args.Get(1).(*model.Account) }).
		Return(nil)

	var createdSession *model.Session
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).
		Run(func(args mock.Arguments) { createdSession = args.Get(1).(*model.Session) }).
		Return(nil)

	svc := newTestAuthService(users, accounts, sessions, now)
	_, token, err := svc.SignUp(context.Background(), "Test User", "new@example.com", "password123")
	assert.NoError(t, err)

	assert.Equal(t, "new@example.com", createdAccount.AccountID)
	assert.Equal(t, model.ProviderCredential, createdAccount.ProviderID)
	assert.Equal(t, hasher.Hash("password123"), createdAccount.Password)

	assert.Equal(t, token, createdSession.Token)
	assert.Equal(t, now.Add(SessionLifetime), createdSession.ExpiresAt)
}

func TestAuthService_SignIn(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hasher := auth.NewHasher("test-secret")
	user := &model.User{ID: "user-1", Email: "test@example.com"}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockAccountRepository, *MockSessionRepository)
		expectedError error
	}{
		{
			name:     "successful sign in",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				accounts.On("FindByUserAndProvider", mock.Anything, "user-1", model.ProviderCredential).Return(&model.Account{
					UserID:   "user-1",
					Password: hasher.Hash("password123"),
				}, nil)
				sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "unknown@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "unknown@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				accounts.On("FindByUserAndProvider", mock.Anything, "user-1", model.ProviderCredential).Return(&model.Account{
					UserID:   "user-1",
					Password: hasher.Hash("password123"),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "user without credential account",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository, accounts *MockAccountRepository, sessions *MockSessionRepository) {
				users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
				accounts.On("FindByUserAndProvider", mock.Anything, "user-1", model.ProviderCredential).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			accounts := new(MockAccountRepository)
			sessions := new(MockSessionRepository)
			tt.setupMock(users, accounts, sessions)

			svc := newTestAuthService(users, accounts, sessions, now)
			got, token, err := svc.SignIn(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, got)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user, got)
				assert.NotEmpty(t, token)
			}

			users.AssertExpectations(t)
			accounts.AssertExpectations(t)
		})
	}
}

// All sign-in failure causes must collapse to the same error value so a
// caller cannot probe which emails are registered.
func TestAuthService_SignIn_FailuresIndistinguishable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hasher := auth.NewHasher("test-secret")
	user := &model.User{ID: "user-1", Email: "test@example.com"}

	unknownUsers := new(MockUserRepository)
	unknownUsers.On("FindByEmail", mock.Anything, "unknown@example.com").Return(nil, gorm.ErrRecordNotFound)
	svcUnknown := newTestAuthService(unknownUsers, new(MockAccountRepository), new(MockSessionRepository), now)
	_, _, errUnknown := svcUnknown.SignIn(context.Background(), "unknown@example.com", "password123")

	knownUsers := new(MockUserRepository)
	knownUsers.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	knownAccounts := new(MockAccountRepository)
	knownAccounts.On("FindByUserAndProvider", mock.Anything, "user-1", model.ProviderCredential).Return(&model.Account{
		UserID:   "user-1",
		Password: hasher.Hash("password123"),
	}, nil)
	svcKnown := newTestAuthService(knownUsers, knownAccounts, new(MockSessionRepository), now)
	_, _, errWrongPassword := svcKnown.SignIn(context.Background(), "test@example.com", "wrong-password")

	assert.Equal(t, errUnknown, errWrongPassword)
	assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
}

func TestAuthService_GetSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{ID: "user-1", Email: "test@example.com"}
	session := &model.Session{ID: "session-1", UserID: "user-1", Token: "valid-token", ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name        string
		token       string
		setupMock   func(*MockUserRepository, *MockSessionRepository)
		wantUser    *model.User
		wantSession *model.Session
		wantErr     bool
	}{
		{
			name:  "valid session resolves",
			token: "valid-token",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				sessions.On("FindValidByToken", mock.Anything, "valid-token", now).Return(session, nil)
				users.On("FindByID", mock.Anything, "user-1").Return(user, nil)
			},
			wantUser:    user,
			wantSession: session,
		},
		{
			name:  "unknown or expired token resolves to nil without error",
			token: "expired-token",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				sessions.On("FindValidByToken", mock.Anything, "expired-token", now).Return(nil, nil)
			},
		},
		{
			name:  "orphaned session resolves to nil without error",
			token: "valid-token",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				sessions.On("FindValidByToken", mock.Anything, "valid-token", now).Return(session, nil)
				users.On("FindByID", mock.Anything, "user-1").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "store failure surfaces as error",
			token: "valid-token",
			setupMock: func(users *MockUserRepository, sessions *MockSessionRepository) {
				sessions.On("FindValidByToken", mock.Anything, "valid-token", now).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sessions := new(MockSessionRepository)
			tt.setupMock(users, sessions)

			svc := newTestAuthService(users, new(MockAccountRepository), sessions, now)
			gotUser, gotSession, err := svc.GetSession(context.Background(), tt.token)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantUser, gotUser)
			assert.Equal(t, tt.wantSession, gotSession)

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

// A session is resolvable up to the instant before its expiry and gone from
// the expiry instant on.
func TestAuthService_GetSession_ExpiryBoundary(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := createdAt.Add(SessionLifetime)
	user := &model.User{ID: "user-1", Email: "test@example.com"}

	sessions := newMemSessionRepository()
	assert.NoError(t, sessions.Create(context.Background(), &model.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Token:     "boundary-token",
		ExpiresAt: expiresAt,
	}))

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	svc := NewAuthService(users, new(MockAccountRepository), sessions, &fakeTxRunner{}, auth.NewHasher("test-secret")).(*authService)

	tests := []struct {
		name     string
		now      time.Time
		resolves bool
	}{
		{"well before expiry", createdAt, true},
		{"one second before expiry", expiresAt.Add(-time.Second), true},
		{"at the expiry instant", expiresAt, false},
		{"after expiry", expiresAt.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.now }
			gotUser, gotSession, err := svc.GetSession(context.Background(), "boundary-token")

			assert.NoError(t, err)
			if tt.resolves {
				assert.Equal(t, user, gotUser)
				assert.NotNil(t, gotSession)
			} else {
				assert.Nil(t, gotUser)
				assert.Nil(t, gotSession)
			}
		})
	}
}

// The session minted by sign-in stops resolving once the clock passes the
// configured lifetime.
func TestAuthService_SignIn_SessionExpiresAfterLifetime(t *testing.T) {
	signedInAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hasher := auth.NewHasher("test-secret")
	user := &model.User{ID: "user-1", Email: "test@example.com"}

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)
	users.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	accounts := new(MockAccountRepository)
	accounts.On("FindByUserAndProvider", mock.Anything, "user-1", model.ProviderCredential).Return(&model.Account{
		UserID:   "user-1",
		Password: hasher.Hash("password123"),
	}, nil)

	sessions := newMemSessionRepository()

	svc := NewAuthService(users, accounts, sessions, &fakeTxRunner{}, hasher).(*authService)
	svc.now = func() time.Time { return signedInAt }

	_, token, err := svc.SignIn(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)

	svc.now = func() time.Time { return signedInAt.Add(SessionLifetime - time.Second) }
	gotUser, gotSession, err := svc.GetSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, user, gotUser)
	assert.NotNil(t, gotSession)

	svc.now = func() time.Time { return signedInAt.Add(SessionLifetime) }
	gotUser, gotSession, err = svc.GetSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Nil(t, gotUser)
	assert.Nil(t, gotSession)
}

func TestAuthService_SignOut_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sessions := new(MockSessionRepository)
	sessions.On("DeleteByToken", mock.Anything, "some-token").Return(nil).Twice()

	svc := newTestAuthService(new(MockUserRepository), new(MockAccountRepository), sessions, now)

	assert.NoError(t, svc.SignOut(context.Background(), "some-token"))
	assert.NoError(t, svc.SignOut(context.Background(), "some-token"))

	sessions.AssertExpectations(t)
}
