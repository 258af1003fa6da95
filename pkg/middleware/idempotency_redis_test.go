package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotelbooking/pkg/logger"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour, logger.Discard())
	ctx := context.Background()

	mock.ExpectGet("idempotency:miss").RedisNil()
	mock.ExpectGet("idempotency:hit").SetVal(`{"status_code":201,"headers":{"Content-Type":["application/json"]},"body":"eyJvayI6dHJ1ZX0="}`)
	mock.ExpectGet("idempotency:broken").SetVal(`not json`)
	mock.ExpectGet("idempotency:down").SetErr(errors.New("connection refused"))

	_, found := store.Get(ctx, "miss")
	assert.False(t, found)

	cached, found := store.Get(ctx, "hit")
	require.True(t, found)
	assert.Equal(t, http.StatusCreated, cached.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(cached.Body))
	assert.Equal(t, "application/json", cached.Headers.Get("Content-Type"))

	_, found = store.Get(ctx, "broken")
	assert.False(t, found)

	_, found = store.Get(ctx, "down")
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}
