package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: miss")

// Store is a byte-oriented key/value cache with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Keys used by the storefront read paths
const (
	KeyCategoryList = "categories:all"
	KeyHeroList     = "hero:all"
)

// GetJSON decodes the cached value for key into dst.
// It returns ErrCacheMiss when nothing is cached.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode cached %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key
func SetJSON(ctx context.Context, s Store, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}

// Remember returns the cached value for key, or calls load, caches and returns its result.
// Cache failures never fail the read; they only cost a trip to load.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if s != nil {
		if err := GetJSON(ctx, s, key, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if s != nil {
		_ = SetJSON(ctx, s, key, value, ttl)
	}
	return value, nil
}
