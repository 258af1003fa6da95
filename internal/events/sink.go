package events

import (
	"context"
	"fmt"

	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
)

// Sink delivers one event. Implementations may block; the Dispatcher calls
// them from its workers only.
type Sink interface {
	Send(ctx context.Context, evt Event) error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaSink struct {
	producer messagePublisher
}

func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Send(ctx context.Context, evt Event) error {
	msg, err := kafka.NewMessage().
		WithKey(evt.Key()).
		WithValue(evt).
		WithEventID(evt.ID).
		WithEventType(evt.Type).
		WithCorrelationID(evt.CorrelationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return fmt.Errorf("build %s message: %w", evt.Type, err)
	}

	return s.producer.Publish(ctx, msg)
}

// LogSink only records the event. Used when no broker is configured.
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(ctx context.Context, evt Event) error {
	s.log.Info("Booking event",
		"event_id", evt.ID,
		"event_type", evt.Type,
		"booking_id", evt.BookingID,
	)
	return nil
}
