package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by the strict accessors when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Client wraps redis.Client. The Get/Set/Delete methods are fail-safe and
// swallow connectivity errors so cached read paths degrade to misses; the
// Fetch/Store/Remove/Keys methods surface errors and back the settings KV
// API, where redis is the system of record rather than a cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}

// Fetch returns the string value for key, or ErrKeyNotFound. Unlike Get it
// surfaces transport errors.
func (c *Client) Fetch(ctx context.Context, key string) (string, error) {
	res, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return res, nil
}

// Store writes a string value with TTL (zero means no expiry) and surfaces
// transport errors.
func (c *Client) Store(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Remove deletes a key and surfaces transport errors. Deleting an absent key
// is not an error.
func (c *Client) Remove(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Keys returns all keys with the given prefix using SCAN.
func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
