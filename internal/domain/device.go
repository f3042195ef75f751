package domain

import (
	"time"

	"github.com/google/uuid"
)

// Device is a manually registered wake target. MAC is stored in
// normalized form: 12 lowercase hex characters, no separators.
type Device struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	MAC       string    `json:"mac" db:"mac"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
