package http

import (
	"encoding/json"
	"net/http"

	apperrors "hotelbooking/pkg/errors"
)

type ErrorResponse struct {
	Error any `json:"error"`
}

// MessageResponse is the body of authentication failures.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders validation failures as {"error": {field: [messages]}} and
// everything else as {"error": "message"}. Internal causes are never exposed.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	switch appErr.Code {
	case apperrors.CodeValidation:
		return WriteJSON(w, appErr.StatusCode(), ErrorResponse{Error: appErr.Fields})
	case apperrors.CodeInternal:
		return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	case apperrors.CodeUnauthorized:
		return WriteJSON(w, http.StatusUnauthorized, MessageResponse{Message: appErr.Message})
	default:
		return WriteJSON(w, appErr.StatusCode(), ErrorResponse{Error: appErr.Message})
	}
}

// WriteResource wraps data under a single key, e.g. {"booking": {...}}.
func WriteResource(w http.ResponseWriter, statusCode int, key string, data any) error {
	return WriteJSON(w, statusCode, map[string]any{key: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
