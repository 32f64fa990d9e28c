package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// RedisStore keeps the token pair in Redis, for deployments where
// several rendering processes must share one customer session. Keys are
// namespaced by a caller-chosen session scope.
type RedisStore struct {
	ctx         context.Context
	redisClient *redis.Client
	key         string
	logger      domain.Logger
}

// NewRedisStore creates a RedisStore bound to the given session scope.
// appCtx is the application lifecycle context used for Redis calls,
// since the TokenStore port itself carries no context.
func NewRedisStore(appCtx context.Context, redisClient *redis.Client, scope string, logger domain.Logger) *RedisStore {
	if redisClient == nil {
		panic("redisClient cannot be nil in NewRedisStore")
	}
	if logger == nil {
		panic("logger cannot be nil in NewRedisStore")
	}
	return &RedisStore{
		ctx:         appCtx,
		redisClient: redisClient,
		key:         fmt.Sprintf("storefront:tokens:%s", scope),
		logger:      logger,
	}
}

// Get returns the stored pair. Redis failures are logged and reported
// as an absent pair, never as an error.
func (s *RedisStore) Get() (domain.TokenPair, bool) {
	fields, err := s.redisClient.HGetAll(s.ctx, s.key).Result()
	if err != nil {
		s.logger.Warn(s.ctx, "Failed to read token pair from Redis, treating as absent", "key", s.key, "error", err.Error())
		return domain.TokenPair{}, false
	}
	pair := domain.TokenPair{
		AccessToken:  fields["access_token"],
		RefreshToken: fields["refresh_token"],
	}
	if !pair.Valid() {
		return domain.TokenPair{}, false
	}
	return pair, true
}

// Set overwrites the stored pair unconditionally.
func (s *RedisStore) Set(pair domain.TokenPair) error {
	err := s.redisClient.HSet(s.ctx, s.key,
		"access_token", pair.AccessToken,
		"refresh_token", pair.RefreshToken,
	).Err()
	if err != nil {
		return fmt.Errorf("redis HSET for token key '%s' failed: %w", s.key, err)
	}
	return nil
}

// Clear removes both tokens.
func (s *RedisStore) Clear() error {
	if err := s.redisClient.Del(s.ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis DEL for token key '%s' failed: %w", s.key, err)
	}
	return nil
}
