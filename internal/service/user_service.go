package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/satsinush/homelab-sub002/internal/config"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/repository"
	"github.com/satsinush/homelab-sub002/pkg/hash"
	"github.com/satsinush/homelab-sub002/pkg/jwt"
)

type UserService struct {
	userRepo     repository.UserRepository
	tokenService *jwt.TokenService
	cfg          *config.Config
}

func NewUserService(
	userRepo repository.UserRepository,
	tokenService *jwt.TokenService,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		tokenService: tokenService,
		cfg:          cfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

// Authenticate verifies a username/password pair and returns the user
// id. Unknown username and wrong password produce the same error so the
// endpoint cannot be used to enumerate accounts.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	valid, err := hash.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored digest degrades to a denied login, never
		// to a server error.
		log.Printf("password verification failed for user %s: %v", user.ID, err)
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	if !valid {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	return user.ID, nil
}

// UpdateProfile changes the username and/or password. It always
// re-verifies the current password, even for an authenticated session.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	valid, err := hash.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !valid {
		return nil, domain.ErrInvalidCredentials
	}

	var update domain.UserUpdate

	if req.Username != "" && req.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, req.Username)
		if err == nil && existing.ID != userID {
			return nil, domain.ErrUsernameTaken
		}
		username := req.Username
		update.Username = &username
	}

	if req.NewPassword != "" {
		newHash, err := hash.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &newHash
	}

	if update.Username == nil && update.PasswordHash == nil {
		return user, nil
	}

	return s.userRepo.Update(ctx, userID, update)
}

// GetUser loads a user by id. The password hash never serializes (the
// field is tagged out), so the returned value doubles as the API view.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateDefaultUser seeds the single admin account on first boot. Safe
// to call on every start: an existing account is returned unchanged.
func (s *UserService) CreateDefaultUser(ctx context.Context) (*domain.User, error) {
	passwordHash, err := hash.HashPassword(s.cfg.Admin.Password)
	if err != nil {
		return nil, err
	}

	return s.userRepo.EnsureDefaultUser(ctx, s.cfg.Admin.Username, passwordHash)
}

// CreateToken and VerifyToken are thin pass-throughs so that callers
// depend on this service rather than on token internals.
func (s *UserService) CreateToken(userID uuid.UUID) (string, error) {
	return s.tokenService.Issue(userID)
}

func (s *UserService) VerifyToken(token string) (uuid.UUID, error) {
	userID, err := s.tokenService.Verify(token)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}
