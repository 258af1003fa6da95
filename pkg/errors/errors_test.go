package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	tests := []struct {
		resource string
		want     string
	}{
		{"Room", "Room not found"},
		{"Customer", "Customer not found"},
		{"Booking", "Booking not found"},
		{"Payment", "Payment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			err := NotFound(tt.resource)
			assert.Equal(t, CodeNotFound, err.Code)
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, http.StatusNotFound, err.StatusCode())
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Booking", 42)

	assert.Equal(t, "Booking not found", err.Message)
	assert.Equal(t, int64(42), err.Details["id"])
}

func TestRoomUnavailable(t *testing.T) {
	err := RoomUnavailable()

	assert.Equal(t, CodeRoomUnavailable, err.Code)
	assert.Equal(t, "Room not available", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
}

func TestValidation_KeepsEveryField(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("room_id", "The room ID is required.")
	fields.Add("check_out_date", "The check-out date must be a valid date.")
	fields.Add("check_out_date", "The check-out date must be after the check-in date.")

	err := Validation(fields)

	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.True(t, err.Fields.Has("room_id"))
	assert.Len(t, err.Fields["check_out_date"], 2)
	assert.False(t, err.Fields.Has("total_price"))
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Room"),
			expected: "NOT_FOUND: Room not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("Failed to create booking", errors.New("connection reset")),
			expected: "INTERNAL_ERROR: Failed to create booking (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	original := errors.New("write conflict")
	appErr := Wrap(original, CodeInternal, "wrapped", http.StatusInternalServerError)

	assert.ErrorIs(t, appErr, original)
}

func TestAsAppError(t *testing.T) {
	t.Run("passes app errors through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("transaction failed: %w", RoomUnavailable())

		got := AsAppError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, CodeRoomUnavailable, got.Code)
		assert.True(t, IsAppError(wrapped))
		assert.True(t, HasCode(wrapped, CodeRoomUnavailable))
	})

	t.Run("converts plain errors to internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))

		assert.Equal(t, CodeInternal, got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}
