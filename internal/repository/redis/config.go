package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/domain"
)

const keyPrefix = "bundlecfg:"

// ConfigRepository implements repository.ConfigRepository using Redis. One
// configuration per session, expiring with the session TTL. The configuration's
// transient product cache is excluded from serialization at the domain level.
type ConfigRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConfigRepository creates a new Redis-backed configuration repository.
func NewConfigRepository(client *redis.Client, ttl time.Duration) *ConfigRepository {
	return &ConfigRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the configuration for a session ID from Redis.
func (r *ConfigRepository) Get(ctx context.Context, sessionID string) (*domain.BundleConfiguration, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("configuration", sessionID)
		}
		return nil, fmt.Errorf("redis get configuration: %w", err)
	}

	var cfg domain.BundleConfiguration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	return &cfg, nil
}

// Save persists a configuration to Redis, refreshing the session TTL.
func (r *ConfigRepository) Save(ctx context.Context, cfg *domain.BundleConfiguration) error {
	key := keyPrefix + cfg.SessionID

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set configuration: %w", err)
	}

	return nil
}

// Delete removes a session's configuration from Redis.
func (r *ConfigRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del configuration: %w", err)
	}

	return nil
}
