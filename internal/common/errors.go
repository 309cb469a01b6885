package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the domain error taxonomy. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP statuses with
// errors.Is while keeping the human-readable detail.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// StatusFromError maps a domain error to an HTTP status code.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondError writes the JSON error response for a domain error.
func RespondError(c *fiber.Ctx, err error) error {
	status := StatusFromError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		// Do not leak internals to the client.
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}
