package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/repository"
)

const uniqueViolation = "23505"

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// Update persists only the fields set in update. The row's own
// uniqueness constraint backs the username conflict check, so a
// concurrent rename cannot slip past the service-level lookup.
func (r *userRepository) Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET username      = COALESCE($2, username),
		    password_hash = COALESCE($3, password_hash),
		    updated_at    = now()
		WHERE id = $1
		RETURNING id, username, password_hash, created_at, updated_at`

	var user domain.User
	err := r.db.GetContext(ctx, &user, query, id, update.Username, update.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// EnsureDefaultUser runs inside one transaction so that concurrent
// boots cannot seed two accounts.
func (r *userRepository) EnsureDefaultUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing domain.User
	err = tx.GetContext(ctx, &existing, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE`)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	var created domain.User
	err = tx.GetContext(ctx, &created, `
		INSERT INTO users (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, username, password_hash, created_at, updated_at`,
		uuid.New(), username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create default user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &created, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
