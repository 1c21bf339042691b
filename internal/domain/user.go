package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role carried in a user's access token.
type Role string

// Supported roles.
const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// User is an account of the authentication service.
type User struct {
	ID           uuid.UUID `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a User with a fresh ID. The password must already be hashed.
func NewUser(login, passwordHash string, role Role, now time.Time) (*User, error) {
	u := &User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyID
	}
	if u.Login == "" {
		return ErrEmptyLogin
	}
	if !loginPattern.MatchString(u.Login) {
		return ErrInvalidLogin
	}
	if u.PasswordHash == "" {
		return ErrEmptyPasswordHash
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
