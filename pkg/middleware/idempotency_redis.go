package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbooking/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyIdempotency = "idempotency:%s"

// RedisIdempotencyStore shares cached responses between API replicas. Redis
// failures degrade to "not cached" and are logged.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl, log: log}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(keyIdempotency, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Error("Failed to read idempotency key", "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Error("Failed to decode cached response", "error", err)
		return nil, false
	}
	return &cached, true
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) {
	response.CreatedAt = time.Now()
	raw, err := json.Marshal(response)
	if err != nil {
		s.log.Error("Failed to encode cached response", "error", err)
		return
	}

	if err := s.rdb.Set(ctx, fmt.Sprintf(keyIdempotency, key), raw, s.ttl).Err(); err != nil {
		s.log.Error("Failed to store idempotency key", "error", err)
	}
}

// Stop is a no-op; the Redis client is owned by the caller.
func (s *RedisIdempotencyStore) Stop() {}
