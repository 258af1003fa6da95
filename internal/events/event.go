package events

import (
	"strconv"
	"time"

	"hotelbooking/pkg/model"

	"github.com/google/uuid"
)

const (
	TypeBookingMade     = "booking.made"
	TypeBookingCanceled = "booking.canceled"

	SchemaVersion = "1"
	Source        = "hotel-api"
)

// Event is the payload published for booking lifecycle changes. The booking
// fields are a snapshot taken when the event was raised, since a canceled
// booking no longer exists by the time it is consumed.
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	RoomID        int64     `json:"room_id"`
	CustomerID    int64     `json:"customer_id"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	OccurredAt    time.Time `json:"occurred_at"`
	CorrelationID string    `json:"-"`
}

func NewBookingMade(booking *model.Booking, correlationID string) Event {
	return newEvent(TypeBookingMade, booking, correlationID)
}

func NewBookingCanceled(booking *model.Booking, correlationID string) Event {
	return newEvent(TypeBookingCanceled, booking, correlationID)
}

func newEvent(eventType string, booking *model.Booking, correlationID string) Event {
	return Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		CustomerID:    booking.CustomerID,
		CheckInDate:   booking.CheckInDate,
		CheckOutDate:  booking.CheckOutDate,
		OccurredAt:    time.Now().UTC(),
		CorrelationID: correlationID,
	}
}

// Key partitions events by booking so a booking's events stay ordered.
func (e Event) Key() string {
	return strconv.FormatInt(e.BookingID, 10)
}
