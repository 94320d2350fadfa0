package practice

import (
	"time"

	"github.com/google/uuid"
)

// Practice statuses. Practices are deactivated, never hard-deleted, so
// historical patient records keep a valid practice reference.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Practice maps to the practice table. The code is the stable identifier
// other records reference and cannot change after creation.
type Practice struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Address   *string   `db:"address" json:"address,omitempty"`
	City      *string   `db:"city" json:"city,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
