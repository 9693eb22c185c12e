package models

import "time"

// User represents an administrator account of the site back office.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID).
	UserID string `json:"_id"`

	// Username is the display name of the user.
	Username string `json:"username"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Password carries the plain password on the way in and the bcrypt hash
	// inside the service and store layers. It is never serialized.
	Password string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the request-scoped identity attached by the auth gate.
func (u User) Identity() Identity {
	return Identity{ID: u.UserID, Email: u.Email, Username: u.Username}
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is a partial update of the current user. Nil fields stay untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// IsEmpty reports whether the update carries no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil
}
