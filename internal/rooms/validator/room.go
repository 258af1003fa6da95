package validator

import (
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/validation"
)

var Messages = validation.Messages{
	"number.required":          "The room number is required.",
	"number.unique":            "The room number must be unique.",
	"number.numeric":           "The room number must be a numeric value.",
	"type.required":            "The room type is required.",
	"type.string":              "The room type must be a string.",
	"type.max":                 "The room type may not be greater than 255 characters.",
	"price_per_night.required": "The price per night is required.",
	"price_per_night.numeric":  "The price per night must be a numeric value.",
	"price_per_night.min":      "The price per night must be at least :min.",
	"status.required":          "The room status is required.",
	"status.in":                "Invalid room status.",
}

type RoomValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewRoomValidator(log *logger.Logger) *RoomValidator {
	return &RoomValidator{
		validator: validation.New(log, Messages),
		logger:    log,
	}
}

func (v *RoomValidator) Messages() validation.Messages {
	return v.validator.Messages()
}

func (v *RoomValidator) ValidateCreate(input *model.RoomCreate) error {
	return v.check(input)
}

func (v *RoomValidator) ValidateUpdate(input *model.RoomUpdate) error {
	return v.check(input)
}

func (v *RoomValidator) check(input any) error {
	fields, err := v.validator.Struct(input)
	if err != nil {
		return apperrors.Internal("Failed to validate room", err)
	}
	if fields != nil {
		return apperrors.Validation(fields)
	}
	return nil
}

// DuplicateNumber is the field error reported when a room number is taken.
func DuplicateNumber() error {
	fields := apperrors.FieldErrors{}
	fields.Add("number", Messages.For("number", validation.RuleUnique, ""))
	return apperrors.Validation(fields)
}
