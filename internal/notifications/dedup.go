package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupKeyFormat = "dedup:%s"
	dedupMarker    = "1"
)

// Deduplicator remembers handled event ids across consumer restarts and
// redeliveries.
type Deduplicator interface {
	// Claim reports whether eventID has not been claimed before.
	Claim(ctx context.Context, eventID string) (bool, error)
	// Release drops a claim so a failed event can be handled again.
	Release(ctx context.Context, eventID string) error
}

type RedisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduplicator(client *redis.Client, ttl time.Duration) *RedisDeduplicator {
	return &RedisDeduplicator{client: client, ttl: ttl}
}

func (d *RedisDeduplicator) Claim(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, fmt.Sprintf(dedupKeyFormat, eventID), dedupMarker, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim event %s: %w", eventID, err)
	}
	return ok, nil
}

func (d *RedisDeduplicator) Release(ctx context.Context, eventID string) error {
	if err := d.client.Del(ctx, fmt.Sprintf(dedupKeyFormat, eventID)).Err(); err != nil {
		return fmt.Errorf("release event %s: %w", eventID, err)
	}
	return nil
}

// NoopDeduplicator claims every event. Used when Redis is not configured.
type NoopDeduplicator struct{}

func (NoopDeduplicator) Claim(context.Context, string) (bool, error) { return true, nil }

func (NoopDeduplicator) Release(context.Context, string) error { return nil }
