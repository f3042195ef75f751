package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/satsinush/homelab-sub002/internal/domain"
)

func deviceColumns() []string {
	return []string{"id", "name", "mac", "created_at", "updated_at"}
}

func TestDeviceList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM devices").
		WillReturnRows(sqlmock.NewRows(deviceColumns()).
			AddRow(uuid.New().String(), "nas", "aabbccddeeff", now, now).
			AddRow(uuid.New().String(), "desktop", "001122334455", now, now))

	devices, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
}

func TestDeviceDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectExec("DELETE FROM devices").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestDeviceUpdate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectExec("UPDATE devices").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Device{
		ID:   uuid.New(),
		Name: "nas",
		MAC:  "aabbccddeeff",
	})
	if !errors.Is(err, domain.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}
