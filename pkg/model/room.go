package model

import "time"

const (
	RoomStatusAvailable   = "available"
	RoomStatusBooked      = "booked"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	ID            int64     `json:"id" bson:"_id"`
	Number        int64     `json:"number" bson:"number"`
	Type          string    `json:"type" bson:"type"`
	PricePerNight float64   `json:"price_per_night" bson:"price_per_night"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (r *Room) IsAvailable() bool {
	return r.Status == RoomStatusAvailable
}

type RoomCreate struct {
	Decoded `json:"-" validate:"-"`

	Number        *int64   `json:"number" validate:"required"`
	Type          *string  `json:"type" validate:"required,filled,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"required,gte=0"`
	Status        *string  `json:"status" validate:"required,filled,oneof=available booked maintenance"`
}

type RoomUpdate struct {
	Decoded `json:"-" validate:"-"`

	Number        *int64   `json:"number" validate:"omitnil,required"`
	Type          *string  `json:"type" validate:"omitnil,required,filled,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitnil,gte=0"`
	Status        *string  `json:"status" validate:"omitnil,required,filled,oneof=available booked maintenance"`
}

func (c *RoomCreate) Room() *Room {
	return &Room{
		Number:        *c.Number,
		Type:          *c.Type,
		PricePerNight: *c.PricePerNight,
		Status:        *c.Status,
	}
}

// Apply merges the supplied fields into r.
func (u *RoomUpdate) Apply(r *Room) {
	if u.Number != nil {
		r.Number = *u.Number
	}
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.PricePerNight != nil {
		r.PricePerNight = *u.PricePerNight
	}
	if u.Status != nil {
		r.Status = *u.Status
	}
}
