package notifications

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/events"
	"hotelbooking/internal/staff"
	"hotelbooking/pkg/kafka"
	"hotelbooking/pkg/logger"
)

type Handler struct {
	staff    staff.Repository
	notifier Notifier
	dedup    Deduplicator
	log      *logger.Logger
}

func NewHandler(staffRepo staff.Repository, notifier Notifier, dedup Deduplicator, log *logger.Logger) *Handler {
	if dedup == nil {
		dedup = NoopDeduplicator{}
	}
	return &Handler{
		staff:    staffRepo,
		notifier: notifier,
		dedup:    dedup,
		log:      log,
	}
}

// Handle notifies every staff member about one booking event. Undecodable
// payloads are permanent failures; store and delivery failures are transient
// so the consumer retries them before dead-lettering.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var evt events.Event
	if err := msg.DecodeValue(&evt); err != nil {
		return kafka.NewPermanentError("decode booking event", err)
	}
	if evt.ID == "" {
		evt.ID = msg.GetEventID()
	}

	notification, ok := Compose(evt)
	if !ok {
		h.log.Warn("Ignoring unknown event type", "event_id", evt.ID, "event_type", evt.Type)
		return nil
	}

	if evt.ID == "" {
		h.log.Warn("Event carries no id, delivering without deduplication", "event_type", evt.Type, "booking_id", evt.BookingID)
		if err := h.notifyAll(ctx, notification); err != nil {
			return kafka.NewTransientError(fmt.Sprintf("notify staff about booking %d", evt.BookingID), err)
		}
		return nil
	}

	first, err := h.dedup.Claim(ctx, evt.ID)
	if err != nil {
		return kafka.NewTransientError("deduplicate booking event", err)
	}
	if !first {
		h.log.Info("Skipping duplicate event", "event_id", evt.ID, "event_type", evt.Type)
		return nil
	}

	if err := h.notifyAll(ctx, notification); err != nil {
		if releaseErr := h.dedup.Release(ctx, evt.ID); releaseErr != nil {
			h.log.Error("Failed to release event claim", "event_id", evt.ID, "error", releaseErr)
		}
		return kafka.NewTransientError(fmt.Sprintf("notify staff about booking %d", evt.BookingID), err)
	}
	return nil
}

func (h *Handler) notifyAll(ctx context.Context, notification Notification) error {
	members, err := h.staff.FindAll(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, member := range members {
		if err := h.notifier.Notify(ctx, member, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
