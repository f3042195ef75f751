package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/satsinush/homelab-sub002/internal/domain"
	"github.com/satsinush/homelab-sub002/internal/repository"
)

type deviceRepository struct {
	db *sqlx.DB
}

// NewDeviceRepository creates a new PostgreSQL device repository
func NewDeviceRepository(db *sqlx.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	query := `
		INSERT INTO devices (id, name, mac, created_at, updated_at)
		VALUES (:id, :name, :mac, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, device)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDeviceExists
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	query := `
		SELECT id, name, mac, created_at, updated_at
		FROM devices
		WHERE id = $1`

	var device domain.Device
	err := r.db.GetContext(ctx, &device, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device by id: %w", err)
	}

	return &device, nil
}

func (r *deviceRepository) List(ctx context.Context) ([]*domain.Device, error) {
	query := `
		SELECT id, name, mac, created_at, updated_at
		FROM devices
		ORDER BY name`

	devices := []*domain.Device{}
	if err := r.db.SelectContext(ctx, &devices, query); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	return devices, nil
}

func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	query := `
		UPDATE devices
		SET name = :name, mac = :mac, updated_at = now()
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, device)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDeviceExists
		}
		return fmt.Errorf("failed to update device: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrDeviceNotFound
	}

	return nil
}

func (r *deviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrDeviceNotFound
	}

	return nil
}
