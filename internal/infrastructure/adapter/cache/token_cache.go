package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
)

// cachedToken is the value stored under an operator's key
type cachedToken struct {
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenCache is a read-through Redis cache in front of an IntegrationTokenRepository.
// Only present tokens are cached. Redis failures fall back to the store.
type TokenCache struct {
	next   persistence.IntegrationTokenRepository
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger coreport.Logger
}

// NewTokenCache wraps next with a cache stored in client
func NewTokenCache(
	next persistence.IntegrationTokenRepository,
	client redis.UniversalClient,
	prefix string,
	ttl time.Duration,
	logger coreport.Logger,
) *TokenCache {
	return &TokenCache{
		next:   next,
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *TokenCache) key(operatorID uuid.UUID) string {
	return c.prefix + operatorID.String()
}

// GetByOperator serves the token from Redis when present and loads it from the store otherwise
func (c *TokenCache) GetByOperator(ctx context.Context, operatorID uuid.UUID) (*entity.IntegrationToken, bool, error) {
	key := c.key(operatorID)

	val, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedToken
		if jsonErr := json.Unmarshal(val, &cached); jsonErr == nil {
			c.logger.Debug("Token cache hit", map[string]any{"operator_id": operatorID.String()})
			return &entity.IntegrationToken{
				OperatorID: operatorID,
				Token:      cached.Token,
				UpdatedAt:  cached.UpdatedAt,
			}, true, nil
		}
		c.logger.Warn("Discarding unreadable token cache entry", map[string]any{"key": key})
	case errors.Is(err, redis.Nil):
		c.logger.Debug("Token cache miss", map[string]any{"operator_id": operatorID.String()})
	default:
		c.logger.Warn("Token cache unavailable, reading from store", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}

	token, found, err := c.next.GetByOperator(ctx, operatorID)
	if err != nil || !found {
		return token, found, err
	}

	c.store(ctx, token)
	return token, true, nil
}

// Upsert writes through to the store and refreshes the cached value
func (c *TokenCache) Upsert(ctx context.Context, token *entity.IntegrationToken) error {
	if err := c.next.Upsert(ctx, token); err != nil {
		return err
	}

	if err := c.client.Del(ctx, c.key(token.OperatorID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate token cache entry", map[string]any{
			"operator_id": token.OperatorID.String(),
			"error":       err.Error(),
		})
		return nil
	}
	c.store(ctx, token)
	return nil
}

func (c *TokenCache) store(ctx context.Context, token *entity.IntegrationToken) {
	data, err := json.Marshal(cachedToken{Token: token.Token, UpdatedAt: token.UpdatedAt})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(token.OperatorID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache token", map[string]any{
			"operator_id": token.OperatorID.String(),
			"error":       err.Error(),
		})
	}
}

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
