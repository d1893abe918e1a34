package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/VASCOSORO/soopbeta/internal/service"
	"github.com/VASCOSORO/soopbeta/internal/tabular"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}

// statusForError maps workflow errors onto HTTP status codes. Everything
// the operator can fix by correcting input is a 4xx; persistence failures
// are 5xx but still leave the session retryable.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrOutOfRange),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrMissingParticipant),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, tabular.ErrImport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
