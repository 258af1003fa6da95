package model

import "time"

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

type Payment struct {
	ID          int64     `json:"id" bson:"_id"`
	BookingID   int64     `json:"booking_id" bson:"booking_id"`
	Amount      float64   `json:"amount" bson:"amount"`
	PaymentDate string    `json:"payment_date" bson:"payment_date"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type PaymentCreate struct {
	Decoded `json:"-" validate:"-"`

	BookingID   *int64   `json:"booking_id" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required"`
	PaymentDate *string  `json:"payment_date" validate:"required,filled,calendar_date"`
	Status      *string  `json:"status" validate:"required,filled,oneof=completed pending failed"`
}

type PaymentUpdate struct {
	Decoded `json:"-" validate:"-"`

	BookingID   *int64   `json:"booking_id" validate:"omitnil,required"`
	Amount      *float64 `json:"amount" validate:"omitnil"`
	PaymentDate *string  `json:"payment_date" validate:"omitnil,required,filled,calendar_date"`
	Status      *string  `json:"status" validate:"omitnil,required,filled,oneof=completed pending failed"`
}

func (c *PaymentCreate) Payment() *Payment {
	return &Payment{
		BookingID:   *c.BookingID,
		Amount:      *c.Amount,
		PaymentDate: *c.PaymentDate,
		Status:      *c.Status,
	}
}

func (u *PaymentUpdate) Apply(p *Payment) {
	if u.BookingID != nil {
		p.BookingID = *u.BookingID
	}
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.PaymentDate != nil {
		p.PaymentDate = *u.PaymentDate
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}
