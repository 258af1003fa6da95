package events

import (
	"context"
	"sync"
	"time"

	"hotelbooking/pkg/logger"
)

// Publisher accepts events without waiting for delivery.
type Publisher interface {
	Publish(evt Event)
}

// Dispatcher queues events on a buffered channel drained by a fixed set of
// workers. A full queue drops the event.
type Dispatcher struct {
	queue       chan Event
	sink        Sink
	sendTimeout time.Duration
	log         *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sink Sink, queueSize, workers int, sendTimeout time.Duration, log *logger.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	d := &Dispatcher{
		queue:       make(chan Event, queueSize),
		sink:        sink,
		sendTimeout: sendTimeout,
		log:         log,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker(i)
	}

	log.Info("Event dispatcher started", "workers", workers, "queue_size", queueSize)
	return d
}

func (d *Dispatcher) Publish(evt Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Event dropped, dispatcher closed", "event_id", evt.ID, "event_type", evt.Type, "booking_id", evt.BookingID)
		return
	}

	select {
	case d.queue <- evt:
	default:
		d.log.Warn("Event dropped, queue full", "event_id", evt.ID, "event_type", evt.Type, "booking_id", evt.BookingID)
	}
}

func (d *Dispatcher) worker(n int) {
	defer d.wg.Done()

	for evt := range d.queue {
		d.deliver(n, evt)
	}
}

func (d *Dispatcher) deliver(n int, evt Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, evt); err != nil {
		d.log.Error("Failed to deliver event",
			"worker", n,
			"event_id", evt.ID,
			"event_type", evt.Type,
			"booking_id", evt.BookingID,
			"error", err,
		)
		return
	}

	d.log.Debug("Event delivered", "worker", n, "event_id", evt.ID, "event_type", evt.Type)
}

// Close stops accepting events and waits for queued ones to be delivered or
// for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Info("Event dispatcher drained")
		return nil
	case <-ctx.Done():
		d.log.Warn("Event dispatcher closed before queue drained", "pending", len(d.queue))
		return ctx.Err()
	}
}
