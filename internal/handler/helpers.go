package handler

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/pkg/hash"
)

// NewErrorHandler builds the fiber error handler producing the fixed
// envelope {"error": "...", "stack": "..."} where stack is included
// only in development.
func NewErrorHandler(includeStack bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		body := fiber.Map{"error": err.Error()}
		if includeStack {
			body["stack"] = string(debug.Stack())
		}
		return c.Status(statusForError(err)).JSON(body)
	}
}

// statusForError maps domain errors onto HTTP status codes. Every
// failure path in the services funnels through here.
func statusForError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, domain.ErrInvalidMAC),
		errors.Is(err, hash.ErrPasswordTooLong):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrDeviceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrDeviceExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrTooManyRequests):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrSendFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// NotFoundHandler answers any route nothing else matched.
func NotFoundHandler(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "Not Found - "+c.Path())
}
