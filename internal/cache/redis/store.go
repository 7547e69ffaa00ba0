// Package redis implements the pricing update cache on top of Redis,
// for deployments where multiple instances share one cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/gemcost/internal/domain"
	"github.com/davidbz/gemcost/internal/observability"
)

const defaultCacheKey = "gemcost:pricing:latest"

// Store persists pricing updates as a JSON value under a single key.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a Redis-backed update cache. An empty key falls back
// to the default.
func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = defaultCacheKey
	}

	return &Store{
		client: client,
		key:    key,
	}
}

// Load reads the cached pricing update. A missing key maps to
// domain.ErrCacheMiss.
func (s *Store) Load(ctx context.Context) (*domain.PricingUpdate, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("read pricing cache key %s: %w", s.key, err)
	}

	var update domain.PricingUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("decode pricing cache key %s: %w", s.key, err)
	}

	return &update, nil
}

// Store writes the pricing update without expiration; staleness is
// enforced by the updater, not the cache.
func (s *Store) Store(ctx context.Context, update *domain.PricingUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode pricing cache: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write pricing cache key %s: %w", s.key, err)
	}

	observability.FromContext(ctx).Debug("stored pricing cache",
		observability.String("key", s.key),
		observability.Int("models", update.ModelCount()),
	)

	return nil
}
