package validator

import (
	bookingserrors "hotelbooking/internal/bookings/errors"
	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
	"hotelbooking/pkg/validation"
)

var Messages = validation.Messages{
	"room_id.required":        "The room ID is required.",
	"customer_id.required":    "The customer ID is required.",
	"check_in_date.required":  "The check-in date is required.",
	"check_in_date.date":      "The check-in date must be a valid date.",
	"check_out_date.required": "The check-out date is required.",
	"check_out_date.date":     "The check-out date must be a valid date.",
	"check_out_date.after":    "The check-out date must be after the check-in date.",
	"total_price.required":    "The total price is required.",
	"total_price.numeric":     "The total price must be a number.",
}

type BookingValidator struct {
	validator *validation.Validator
	logger    *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Debug("Booking validator initialized successfully")

	return &BookingValidator{
		validator: validation.New(log, Messages),
		logger:    log,
	}
}

// ValidateCreate reports every violated field at once, including the date
// order rule.
func (v *BookingValidator) ValidateCreate(input *model.BookingCreate) error {
	fields, err := v.validator.Struct(input)
	if err != nil {
		return apperrors.Internal("Failed to validate booking", err)
	}
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	checkStay(fields, input.CheckInDate, input.CheckOutDate)
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// ValidateUpdate checks only the supplied fields. The date order rule is
// applied when both dates are supplied; ValidateStay covers the merged record.
func (v *BookingValidator) ValidateUpdate(input *model.BookingUpdate) error {
	fields, err := v.validator.Struct(input)
	if err != nil {
		return apperrors.Internal("Failed to validate booking", err)
	}
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	checkStay(fields, input.CheckInDate, input.CheckOutDate)
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

// ValidateStay applies the date order rule to a complete booking.
func (v *BookingValidator) ValidateStay(booking *model.Booking) error {
	fields := apperrors.FieldErrors{}
	checkStay(fields, &booking.CheckInDate, &booking.CheckOutDate)
	if len(fields) > 0 {
		v.logger.Warn("Booking stay is invalid",
			"id", booking.ID,
			"check_in_date", booking.CheckInDate,
			"check_out_date", booking.CheckOutDate,
			"error", bookingserrors.ErrInvalidStay,
		)
		return apperrors.Validation(fields)
	}
	return nil
}

// checkStay adds the "after" violation when both dates parse and check-out is
// not strictly later. Unparseable dates are already reported by their own rule.
func checkStay(fields apperrors.FieldErrors, checkIn, checkOut *string) {
	if checkIn == nil || checkOut == nil || fields.Has("check_in_date") || fields.Has("check_out_date") {
		return
	}

	in, errIn := validation.ParseDate(*checkIn)
	out, errOut := validation.ParseDate(*checkOut)
	if errIn != nil || errOut != nil {
		return
	}

	if !out.After(in) {
		fields.Add("check_out_date", Messages.For("check_out_date", validation.RuleAfter, ""))
	}
}
