package model

import "time"

type Customer struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type CustomerCreate struct {
	Decoded `json:"-" validate:"-"`

	Name        *string `json:"name" validate:"required,filled,max=255"`
	Email       *string `json:"email" validate:"required,filled,email"`
	PhoneNumber *string `json:"phone_number" validate:"required,filled,max=15"`
}

type CustomerUpdate struct {
	Decoded `json:"-" validate:"-"`

	Name        *string `json:"name" validate:"omitnil,required,filled,max=255"`
	Email       *string `json:"email" validate:"omitnil,required,filled,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitnil,required,filled,max=15"`
}

func (c *CustomerCreate) Customer() *Customer {
	return &Customer{
		Name:        *c.Name,
		Email:       *c.Email,
		PhoneNumber: *c.PhoneNumber,
	}
}

func (u *CustomerUpdate) Apply(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		c.PhoneNumber = *u.PhoneNumber
	}
}
