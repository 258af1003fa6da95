package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelbooking/internal/notifications"
	"hotelbooking/internal/staff"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
	kafka_middleware "hotelbooking/pkg/kafka/middleware"
)

const ServiceName = "staff-notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	notifier, err := notifications.NewNotifier(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifier", "error", err)
	}

	var dedup notifications.Deduplicator = notifications.NoopDeduplicator{}
	if cfg.Client.Redis != nil {
		dedup = notifications.NewRedisDeduplicator(cfg.Client.Redis, cfg.NotificationDedupTTL)
	}

	handler := notifications.NewHandler(staff.NewMongoRepository(cfg), notifier, dedup, cfg.Log)

	kafkaCfg := kafka_config.Load(cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.NotificationsGroupID,
		cfg.BookingEventsDLQ,
		handler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking events", "topic", cfg.BookingEventsTopic, "group_id", cfg.NotificationsGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close kafka consumer", "error", err)
	}
	cfg.Log.Info("Notification consumer stopped")
}
