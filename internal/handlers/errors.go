package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-lens/internal/repositories"
	"alfredoptarigan/resume-lens/internal/services"
)

// ErrorHandler is the app-wide error handler. Service error kinds map onto
// status codes; anything unrecognised is a 500 with a generic message so no
// internal detail reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// StatusFor maps an error onto the HTTP status it is reported with.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, services.ErrInput), errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrAccess):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrFileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrPersistence):
		if errors.Is(err, repositories.ErrNotFound) {
			return fiber.StatusNotFound
		}
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
