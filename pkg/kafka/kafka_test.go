package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotelbooking/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("42").
		WithEventType("BookingMade").
		WithValue(map[string]int64{"booking_id": 42}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "42", msg.Key)
	assert.JSONEq(t, `{"booking_id":42}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "BookingMade", msg.GetEventType())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("1").WithValue(make(chan int)).Build()
	assert.Error(t, err)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	assert.Equal(t, 0, msg.GetRetryCount())

	for range 12 {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil, "booking-events", logger.Discard())

	var seen []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seen = append(seen, msg.Topic)
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("1").WithValue("x").Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "1", string(w.msgs[0].Key))
	assert.Equal(t, []string{"booking-events"}, seen)
}

func TestProducer_RejectsInvalidAndClosed(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "t", logger.Discard())

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k", Value: []byte("x")}), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("connection refused")
	dlq := &fakeWriter{}
	p := newProducer(&fakeWriter{err: writeErr}, dlq, "booking-events", logger.Discard())

	msg, _ := NewMessage().WithKey("7").WithValue("x").Build()
	err := p.Publish(context.Background(), msg)

	assert.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "booking-events", header(dlq.msgs[0], HeaderOriginalTopic))
	assert.Equal(t, "connection refused", header(dlq.msgs[0], HeaderDLQError))
}

type fakeReader struct {
	mu        sync.Mutex
	pending   []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		msg := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func TestConsumer_RetriesTransientThenDeadLetters(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{{Key: []byte("1"), Value: []byte(`{}`)}}}
	dlq := &fakeWriter{}

	var mu sync.Mutex
	calls := 0
	handler := func(ctx context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return NewTransientError("smtp unavailable", errors.New("timeout"))
	}

	c := newConsumer(reader, dlq, "booking-events", "staff-notifications", handler, logger.Discard())
	c.maxRetries = 2

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, func() bool { return reader.committedCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, c.Close())

	mu.Lock()
	assert.Equal(t, 3, calls)
	mu.Unlock()
	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "staff-notifications", header(dlq.msgs[0], HeaderDLQGroup))
	assert.Equal(t, "2", header(dlq.msgs[0], HeaderRetryCount))
}

func TestConsumer_PermanentErrorIsNotRetried(t *testing.T) {
	c := newConsumer(&fakeReader{}, nil, "t", "g", func(ctx context.Context, msg Message) error {
		return NewPermanentError("bad payload", nil)
	}, logger.Discard())
	c.maxRetries = 5

	calls := 0
	c.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		calls++
		return next(ctx, msg)
	})

	err := c.processMessage(context.Background(), Message{Headers: map[string]string{}})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorTypeUnknown, ClassifyError(nil))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(errors.New("dial tcp: I/O Timeout")))
	assert.Equal(t, ErrorTypePermanent, ClassifyError(errors.New("json: cannot unmarshal")))
	assert.Equal(t, ErrorTypeTransient, ClassifyError(NewTransientError("x", nil)))
	assert.False(t, ShouldRetry(NewTransientError("x", nil), 3, 3))
}
