package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	environment string
	version     string
	startedAt   time.Time
}

func NewHealthHandler(environment, version string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		version:     version,
		startedAt:   time.Now(),
	}
}

// Health is the liveness probe
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// Status feeds the dashboard status panel
// GET /api/status
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "ok",
		"environment": h.environment,
		"version":     h.version,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
	})
}
