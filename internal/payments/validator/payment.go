package validator

import (
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/validation"
)

var Messages = validation.Messages{
	"booking_id.required":   "The booking ID is required.",
	"amount.required":       "The amount is required.",
	"amount.numeric":        "The amount must be a number.",
	"payment_date.required": "The payment date is required.",
	"payment_date.date":     "The payment date must be a valid date.",
	"status.required":       "The status is required.",
	"status.in":             "The status must be one of: completed, pending, failed.",
}

type PaymentValidator struct {
	validator *validation.Validator
}

func NewPaymentValidator(log *logger.Logger) *PaymentValidator {
	return &PaymentValidator{
		validator: validation.New(log, Messages),
	}
}

func (v *PaymentValidator) ValidateCreate(input *model.PaymentCreate) error {
	return v.check(input)
}

func (v *PaymentValidator) ValidateUpdate(input *model.PaymentUpdate) error {
	return v.check(input)
}

func (v *PaymentValidator) check(input any) error {
	fields, err := v.validator.Struct(input)
	if err != nil {
		return apperrors.Internal("Failed to validate payment", err)
	}
	if fields != nil {
		return apperrors.Validation(fields)
	}
	return nil
}
