package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/service"
	"github.com/satsinush/homelab-sub002/pkg/ratelimit"
	"github.com/satsinush/homelab-sub002/pkg/validator"
)

type AuthHandler struct {
	userService *service.UserService
	limiter     *ratelimit.Limiter
	validator   *validator.Validator
}

func NewAuthHandler(userService *service.UserService, limiter *ratelimit.Limiter, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		limiter:     limiter,
		validator:   validator,
	}
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	allowed, err := h.limiter.Allow(c.Context(), "login:"+c.IP())
	if err != nil {
		// The limiter failing open beats locking everyone out when
		// Redis is down.
		log.Printf("rate limiter unavailable: %v", err)
	} else if !allowed {
		return domain.ErrTooManyRequests
	}

	userID, err := h.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, err := h.userService.CreateToken(userID)
	if err != nil {
		return err
	}

	if err := h.limiter.Reset(c.Context(), "login:"+c.IP()); err != nil {
		log.Printf("failed to reset rate limit window: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
	})
}

// UpdateProfile handles username/password changes for the current user
// POST /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	userID := c.Locals("user_id").(uuid.UUID)

	user, err := h.userService.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetMe returns the current user's view
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uuid.UUID)

	user, err := h.userService.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
