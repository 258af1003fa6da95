package validator

import (
	"testing"

	apperrors "hotelbooking/pkg/errors"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateCreate_MissingFields(t *testing.T) {
	v := NewRoomValidator(logger.Discard())

	err := v.ValidateCreate(&model.RoomCreate{})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"The room number is required."}, appErr.Fields["number"])
	assert.Equal(t, []string{"The room type is required."}, appErr.Fields["type"])
	assert.Equal(t, []string{"The price per night is required."}, appErr.Fields["price_per_night"])
	assert.Equal(t, []string{"The room status is required."}, appErr.Fields["status"])
}

func TestValidateCreate_Rules(t *testing.T) {
	v := NewRoomValidator(logger.Discard())

	tests := []struct {
		name    string
		input   model.RoomCreate
		field   string
		message string
	}{
		{
			name:    "negative price",
			input:   model.RoomCreate{Number: ptr(int64(101)), Type: ptr("Single"), PricePerNight: ptr(-1.0), Status: ptr("available")},
			field:   "price_per_night",
			message: "The price per night must be at least 0.",
		},
		{
			name:    "unknown status",
			input:   model.RoomCreate{Number: ptr(int64(101)), Type: ptr("Single"), PricePerNight: ptr(80.0), Status: ptr("closed")},
			field:   "status",
			message: "Invalid room status.",
		},
		{
			name:    "blank type",
			input:   model.RoomCreate{Number: ptr(int64(101)), Type: ptr("  "), PricePerNight: ptr(80.0), Status: ptr("available")},
			field:   "type",
			message: "The room type is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&tt.input)
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, []string{tt.message}, appErr.Fields[tt.field])
		})
	}
}

func TestValidateCreate_ZeroPriceIsValid(t *testing.T) {
	v := NewRoomValidator(logger.Discard())

	err := v.ValidateCreate(&model.RoomCreate{
		Number:        ptr(int64(7)),
		Type:          ptr("Suite"),
		PricePerNight: ptr(0.0),
		Status:        ptr("maintenance"),
	})
	assert.NoError(t, err)
}

func TestValidateUpdate_OnlySuppliedFields(t *testing.T) {
	v := NewRoomValidator(logger.Discard())

	assert.NoError(t, v.ValidateUpdate(&model.RoomUpdate{}))
	assert.NoError(t, v.ValidateUpdate(&model.RoomUpdate{Status: ptr("booked")}))

	err := v.ValidateUpdate(&model.RoomUpdate{Status: ptr("")})
	require.Error(t, err)
	assert.Equal(t, []string{"The room status is required."}, apperrors.AsAppError(err).Fields["status"])
}

func TestDuplicateNumber(t *testing.T) {
	appErr := apperrors.AsAppError(DuplicateNumber())
	assert.Equal(t, []string{"The room number must be unique."}, appErr.Fields["number"])
}
