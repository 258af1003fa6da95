package model

import "time"

// Booking dates are calendar days in YYYY-MM-DD form.
type Booking struct {
	ID           int64     `json:"id" bson:"_id"`
	RoomID       int64     `json:"room_id" bson:"room_id"`
	CustomerID   int64     `json:"customer_id" bson:"customer_id"`
	CheckInDate  string    `json:"check_in_date" bson:"check_in_date"`
	CheckOutDate string    `json:"check_out_date" bson:"check_out_date"`
	TotalPrice   float64   `json:"total_price" bson:"total_price"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type BookingCreate struct {
	Decoded `json:"-" validate:"-"`

	RoomID       *int64   `json:"room_id" validate:"required"`
	CustomerID   *int64   `json:"customer_id" validate:"required"`
	CheckInDate  *string  `json:"check_in_date" validate:"required,filled,calendar_date"`
	CheckOutDate *string  `json:"check_out_date" validate:"required,filled,calendar_date"`
	TotalPrice   *float64 `json:"total_price" validate:"required"`
}

type BookingUpdate struct {
	Decoded `json:"-" validate:"-"`

	RoomID       *int64   `json:"room_id" validate:"omitnil,required"`
	CustomerID   *int64   `json:"customer_id" validate:"omitnil,required"`
	CheckInDate  *string  `json:"check_in_date" validate:"omitnil,required,filled,calendar_date"`
	CheckOutDate *string  `json:"check_out_date" validate:"omitnil,required,filled,calendar_date"`
	TotalPrice   *float64 `json:"total_price" validate:"omitnil"`
}

func (c *BookingCreate) Booking() *Booking {
	return &Booking{
		RoomID:       *c.RoomID,
		CustomerID:   *c.CustomerID,
		CheckInDate:  *c.CheckInDate,
		CheckOutDate: *c.CheckOutDate,
		TotalPrice:   *c.TotalPrice,
	}
}

// Apply merges the supplied fields into b. Absent fields are untouched.
func (u *BookingUpdate) Apply(b *Booking) {
	if u.RoomID != nil {
		b.RoomID = *u.RoomID
	}
	if u.CustomerID != nil {
		b.CustomerID = *u.CustomerID
	}
	if u.CheckInDate != nil {
		b.CheckInDate = *u.CheckInDate
	}
	if u.CheckOutDate != nil {
		b.CheckOutDate = *u.CheckOutDate
	}
	if u.TotalPrice != nil {
		b.TotalPrice = *u.TotalPrice
	}
}
