package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agentdesk/internal/cache"
	"agentdesk/internal/errors"
)

const (
	settingKeyPrefix = "setting:"
	cacheKeyPrefix   = "cache:"
	cacheDemoTTL     = 60 * time.Second
)

// KVStore is the strict key-value surface of the redis client used by the
// settings API. Unlike the fail-safe cache methods, these surface errors:
// redis is the system of record for settings.
type KVStore interface {
	Fetch(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// SettingItem is one settings entry with its prefix stripped.
type SettingItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CachedValue is the result of the cache demo lookup.
type CachedValue struct {
	Value     string `json:"value"`
	FromCache bool   `json:"fromCache"`
}

// SettingsService exposes the KV settings store and a TTL cache demo.
type SettingsService interface {
	GetSetting(ctx context.Context, key string) (string, error)
	ListSettings(ctx context.Context) ([]SettingItem, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
	GetCachedValue(ctx context.Context, key string) (*CachedValue, error)
	ClearCache(ctx context.Context, key string) error
}

type settingsService struct {
	kv  KVStore
	now func() time.Time
}

// NewSettingsService creates a settings service over the given KV store.
func NewSettingsService(kv KVStore) SettingsService {
	return &settingsService{kv: kv, now: time.Now}
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (string, error) {
	value, err := s.kv.Fetch(ctx, settingKeyPrefix+key)
	if err == cache.ErrKeyNotFound {
		return "", errors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return value, nil
}

func (s *settingsService) ListSettings(ctx context.Context) ([]SettingItem, error) {
	keys, err := s.kv.Keys(ctx, settingKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}

	settings := make([]SettingItem, 0, len(keys))
	for _, key := range keys {
		value, err := s.kv.Fetch(ctx, key)
		if err == cache.ErrKeyNotFound {
			// key expired between the scan and the read
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
		}
		settings = append(settings, SettingItem{
			Key:   strings.TrimPrefix(key, settingKeyPrefix),
			Value: value,
		})
	}
	return settings, nil
}

func (s *settingsService) SetSetting(ctx context.Context, key, value string) error {
	if err := s.kv.Store(ctx, settingKeyPrefix+key, value, 0); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *settingsService) DeleteSetting(ctx context.Context, key string) error {
	if err := s.kv.Remove(ctx, settingKeyPrefix+key); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

// GetCachedValue returns the cached value for key, computing and storing a
// fresh one with a 60-second TTL on a miss.
func (s *settingsService) GetCachedValue(ctx context.Context, key string) (*CachedValue, error) {
	cached, err := s.kv.Fetch(ctx, cacheKeyPrefix+key)
	if err == nil {
		return &CachedValue{Value: cached, FromCache: true}, nil
	}
	if err != cache.ErrKeyNotFound {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}

	computed := "Computed at " + s.now().UTC().Format(time.RFC3339)
	if err := s.kv.Store(ctx, cacheKeyPrefix+key, computed, cacheDemoTTL); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return &CachedValue{Value: computed, FromCache: false}, nil
}

func (s *settingsService) ClearCache(ctx context.Context, key string) error {
	if err := s.kv.Remove(ctx, cacheKeyPrefix+key); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}
