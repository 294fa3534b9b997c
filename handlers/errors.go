package handlers

import (
	"errors"
	"net/http"

	"nursethink/models"
	"nursethink/services"
	"nursethink/services/ngn"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case models.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case ngn.IsTransitionError(err), errors.Is(err, services.ErrStaleResult):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
