package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. The password hash never leaves the API.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Username     string    `db:"username" json:"username"`
	Role         string    `db:"role" json:"role"`
	PracticeCode string    `db:"practice_code" json:"practice_code"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
