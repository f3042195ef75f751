package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/satsinush/homelab-sub002/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error)
	// EnsureDefaultUser is idempotent: if any user row exists it is
	// returned unchanged, otherwise one is created from the arguments.
	EnsureDefaultUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
}
