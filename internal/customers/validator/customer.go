package validator

import (
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/validation"
)

var Messages = validation.Messages{
	"name.required":         "The customer name is required.",
	"name.string":           "The customer name must be a string.",
	"name.max":              "The customer name may not be greater than 255 characters.",
	"email.required":        "The customer email is required.",
	"email.unique":          "The customer email must be unique.",
	"email.string":          "The customer email must be a string.",
	"phone_number.required": "The customer phone number is required.",
	"phone_number.string":   "The customer phone number must be a string.",
	"phone_number.max":      "The customer phone number may not be greater than 15 characters.",
}

type CustomerValidator struct {
	validator *validation.Validator
}

func NewCustomerValidator(log *logger.Logger) *CustomerValidator {
	return &CustomerValidator{
		validator: validation.New(log, Messages),
	}
}

func (v *CustomerValidator) ValidateCreate(input *model.CustomerCreate) error {
	return v.check(input)
}

func (v *CustomerValidator) ValidateUpdate(input *model.CustomerUpdate) error {
	return v.check(input)
}

func (v *CustomerValidator) check(input any) error {
	fields, err := v.validator.Struct(input)
	if err != nil {
		return apperrors.Internal("Failed to validate customer", err)
	}
	if fields != nil {
		return apperrors.Validation(fields)
	}
	return nil
}

func DuplicateEmail() error {
	fields := apperrors.FieldErrors{}
	fields.Add("email", Messages.For("email", validation.RuleUnique, ""))
	return apperrors.Validation(fields)
}
