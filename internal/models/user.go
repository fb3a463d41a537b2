package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`           // Primary key
	Email        string    `json:"email" db:"email"`               // Unique, lower-cased email
	Name         string    `json:"name" db:"name"`                 // Display name
	PasswordHash string    `json:"-" db:"password_hash"`           // Bcrypt hash, never serialized
	IsActive     bool      `json:"is_active" db:"is_active"`       // Inactive users cannot obtain tokens
	IsStaff      bool      `json:"is_staff" db:"is_staff"`         // Staff users may access admin routes
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"` // Superuser flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}

// String returns the user's email.
func (u UserDB) String() string {
	return u.Email
}
