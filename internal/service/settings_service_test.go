package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agentdesk/internal/cache"
	apperrors "agentdesk/internal/errors"
)

// MockKVStore is a mock implementation of KVStore.
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Fetch(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockKVStore) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockKVStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestSettingsService_GetSetting(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockKVStore)
		wantValue     string
		expectedError error
	}{
		{
			name: "existing setting",
			setupMock: func(m *MockKVStore) {
				m.On("Fetch", mock.Anything, "setting:site_title").Return("AgentDesk", nil)
			},
			wantValue: "AgentDesk",
		},
		{
			name: "missing setting",
			setupMock: func(m *MockKVStore) {
				m.On("Fetch", mock.Anything, "setting:site_title").Return("", cache.ErrKeyNotFound)
			},
			expectedError: apperrors.ErrSettingNotFound,
		},
		{
			name: "redis outage surfaces",
			setupMock: func(m *MockKVStore) {
				m.On("Fetch", mock.Anything, "setting:site_title").Return("", assert.AnError)
			},
			expectedError: apperrors.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := new(MockKVStore)
			tt.setupMock(kv)

			svc := NewSettingsService(kv)
			value, err := svc.GetSetting(context.Background(), "site_title")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantValue, value)
			}

			kv.AssertExpectations(t)
		})
	}
}

func TestSettingsService_ListSettings_StripsPrefix(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Keys", mock.Anything, "setting:").Return([]string{"setting:site_title", "setting:theme"}, nil)
	kv.On("Fetch", mock.Anything, "setting:site_title").Return("AgentDesk", nil)
	kv.On("Fetch", mock.Anything, "setting:theme").Return("dark", nil)

	svc := NewSettingsService(kv)
	settings, err := svc.ListSettings(context.Background())
	assert.NoError(t, err)
	assert.ElementsMatch(t, []SettingItem{
		{Key: "site_title", Value: "AgentDesk"},
		{Key: "theme", Value: "dark"},
	}, settings)

	kv.AssertExpectations(t)
}

func TestSettingsService_ListSettings_SkipsExpiredKeys(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Keys", mock.Anything, "setting:").Return([]string{"setting:gone", "setting:theme"}, nil)
	kv.On("Fetch", mock.Anything, "setting:gone").Return("", cache.ErrKeyNotFound)
	kv.On("Fetch", mock.Anything, "setting:theme").Return("dark", nil)

	svc := NewSettingsService(kv)
	settings, err := svc.ListSettings(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []SettingItem{{Key: "theme", Value: "dark"}}, settings)
}

func TestSettingsService_SetSetting_Persistent(t *testing.T) {
	kv := new(MockKVStore)
	// settings never expire; only the cache demo uses a TTL
	kv.On("Store", mock.Anything, "setting:site_title", "AgentDesk", time.Duration(0)).Return(nil)

	svc := NewSettingsService(kv)
	assert.NoError(t, svc.SetSetting(context.Background(), "site_title", "AgentDesk"))

	kv.AssertExpectations(t)
}

func TestSettingsService_GetCachedValue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("hit returns cached value", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Fetch", mock.Anything, "cache:demo").Return("Computed at 2026-03-01T11:59:30Z", nil)

		svc := NewSettingsService(kv)
		got, err := svc.GetCachedValue(context.Background(), "demo")
		assert.NoError(t, err)
		assert.True(t, got.FromCache)
		assert.Equal(t, "Computed at 2026-03-01T11:59:30Z", got.Value)
	})

	t.Run("miss computes and stores with TTL", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Fetch", mock.Anything, "cache:demo").Return("", cache.ErrKeyNotFound)
		kv.On("Store", mock.Anything, "cache:demo", "Computed at 2026-03-01T12:00:00Z", cacheDemoTTL).Return(nil)

		svc := NewSettingsService(kv).(*settingsService)
		svc.now = func() time.Time { return now }

		got, err := svc.GetCachedValue(context.Background(), "demo")
		assert.NoError(t, err)
		assert.False(t, got.FromCache)
		assert.Equal(t, "Computed at 2026-03-01T12:00:00Z", got.Value)

		kv.AssertExpectations(t)
	})
}

func TestSettingsService_DeleteSetting_SilentOnAbsent(t *testing.T) {
	kv := new(MockKVStore)
	kv.On("Remove", mock.Anything, "setting:missing").Return(nil)

	svc := NewSettingsService(kv)
	assert.NoError(t, svc.DeleteSetting(context.Background(), "missing"))
}
