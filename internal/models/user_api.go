package models

import "github.com/google/uuid"

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Invalid input
	Error string `json:"error"`

	// Per-field validation messages
	Fields map[string][]string `json:"fields,omitempty"`
}

// CreateUserRequest represents the JSON body for user registration
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Email
	// required: true
	// example: jimmy@example.com
	Email string `json:"email" validate:"required,email,max=255"`

	// Password
	// required: true
	// example: Password1
	Password string `json:"password" validate:"required,min=5,max=128"`

	// Display name
	// required: true
	// example: Jimmy Jenkins
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// UpdateUserRequest represents the JSON body for updating the current user.
// PATCH changes only the supplied fields; PUT requires all of them.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// Email
	// example: jimmy@example.com
	Email *string `json:"email" validate:"required,email,max=255"`

	// Password
	// example: Password1
	Password *string `json:"password" validate:"required,min=5,max=128"`

	// Display name
	// example: Jimmy Jenkins
	Name *string `json:"name" validate:"required,notblank,max=255"`
}

// PresentFields returns the names of the fields supplied in the request.
func (r UpdateUserRequest) PresentFields() []string {
	var fields []string
	if r.Email != nil {
		fields = append(fields, "Email")
	}
	if r.Password != nil {
		fields = append(fields, "Password")
	}
	if r.Name != nil {
		fields = append(fields, "Name")
	}
	return fields
}

// UserResponse represents the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	// Email
	// example: jimmy@example.com
	Email string `json:"email"`

	// Display name
	// example: Jimmy Jenkins
	Name string `json:"name"`
}

// TokenRequest represents the JSON body for token issuance
// swagger:model TokenRequest
type TokenRequest struct {
	// Email
	// required: true
	// example: jimmy@example.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// example: Password1
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents a successful token issuance
// swagger:model TokenResponse
type TokenResponse struct {
	// Bearer token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// AdminUserResponse represents a user in the staff listing
// swagger:model AdminUserResponse
type AdminUserResponse struct {
	UserID      uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
}

// UserUpdate carries the user fields to change; nil fields are kept.
type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
}
