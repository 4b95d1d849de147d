package models

import "time"

// Role is the authorization level attached to a user account.
type Role string

const (
	// RoleAdmin grants full mutation rights over rooms, expenses, the
	// timeline, and user management.
	RoleAdmin Role = "admin"

	// RoleUser grants read access only.
	RoleUser Role = "user"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the server-assigned unique identifier of the user.
	ID string `json:"id"`

	// Username is the unique, lowercased login identifier.
	// 3-30 characters matching [a-z0-9_-]+.
	Username string `json:"username"`

	// Email is the unique, lowercased e-mail address of the user.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Password carries the plaintext password on inbound create/verify
	// requests only. It is never persisted: the identity store hashes it
	// into PasswordHash and discards it. Marked omitempty so that users
	// serialized into responses never carry the field.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// IsActive reports whether the account may authenticate.
	// Deactivated accounts are rejected with Forbidden.
	IsActive bool `json:"isActive"`

	// LastLogin is the instant of the most recent successful login,
	// nil if the user has never logged in.
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last modification to the account.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Summary strips the user down to the fields that are safe to return to
// callers. The password hash never crosses this boundary.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
	}
}

// UserSummary is the public projection of a user account returned by the
// authentication endpoints.
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
