package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/satsinush/homelab-sub002/internal/service"
	"github.com/satsinush/homelab-sub002/pkg/validator"
)

type DeviceHandler struct {
	deviceService *service.DeviceService
	validator     *validator.Validator
}

func NewDeviceHandler(deviceService *service.DeviceService, validator *validator.Validator) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
		validator:     validator,
	}
}

// List returns the device inventory
// GET /api/devices
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	devices, err := h.deviceService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(devices)
}

// Create registers a device
// POST /api/devices
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var req service.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	device, err := h.deviceService.Create(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}

// Update renames or re-addresses a device
// PUT /api/devices/:id
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid device id")
	}

	var req service.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	device, err := h.deviceService.Update(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(device)
}

// Delete removes a device from the inventory
// DELETE /api/devices/:id
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid device id")
	}

	if err := h.deviceService.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Wake sends a magic packet to an arbitrary MAC
// POST /api/devices/wake
func (h *DeviceHandler) Wake(c *fiber.Ctx) error {
	var req service.WakeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.deviceService.Wake(req.MAC); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "wake packet sent",
	})
}

// WakeByID sends a magic packet to a registered device
// POST /api/devices/:id/wake
func (h *DeviceHandler) WakeByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid device id")
	}

	device, err := h.deviceService.WakeByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "wake packet sent",
		"device":  device,
	})
}
