package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the failure modes the handlers translate to HTTP
// statuses. Wrap with fmt.Errorf("...: %w", Err...) to add context; the
// status mapping works through errors.Is.
var (
	ErrValidation       = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrRoleMismatch     = errors.New("role mismatch")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrLateSubmission   = errors.New("late submission not allowed")
	ErrGradeOutOfRange  = errors.New("grade exceeds maximum marks")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// StatusCode maps an error to the HTTP status the response should carry.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrLateSubmission), errors.Is(err, ErrGradeOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRoleMismatch), errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
