package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	authHandler *AuthHandler,
	deviceHandler *DeviceHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Liveness (public)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authMiddleware, authHandler.GetMe)
	auth.Post("/profile", authMiddleware, authHandler.UpdateProfile)

	// Device routes (protected)
	devices := api.Group("/devices", authMiddleware)
	devices.Get("/", deviceHandler.List)
	devices.Post("/", deviceHandler.Create)
	devices.Post("/wake", deviceHandler.Wake)
	devices.Put("/:id", deviceHandler.Update)
	devices.Delete("/:id", deviceHandler.Delete)
	devices.Post("/:id/wake", deviceHandler.WakeByID)

	// Status (protected)
	api.Get("/status", authMiddleware, healthHandler.Status)

	// Anything else is a 404 with the requested path in the message
	app.Use(NotFoundHandler)
}
