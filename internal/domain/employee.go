package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee is a member of the shop's staff.
type Employee struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`    // Stored lower-cased; unique
	HiredAt   time.Time `json:"hired_at"` // Defaults to the creation time
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEmployee creates an Employee. A zero hiredAt defaults to now.
func NewEmployee(fullName, position, email string, hiredAt, now time.Time) (*Employee, error) {
	if hiredAt.IsZero() {
		hiredAt = now
	}
	// Emails are compared case-insensitively, so normalize before validating
	e := &Employee{
		ID:        uuid.New(),
		FullName:  fullName,
		Position:  position,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		HiredAt:   hiredAt.UTC(),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks if the Employee has valid data.
// Returns the first failing field's error.
func (e *Employee) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyID
	}
	if err := validName(e.FullName, 200); err != nil {
		return err
	}
	if err := validName(e.Position, 100); err != nil {
		return err
	}
	if !validEmail(e.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Update replaces the employee's details. A zero hiredAt keeps the current value.
func (e *Employee) Update(fullName, position, email string, hiredAt, now time.Time) error {
	e.FullName = fullName
	e.Position = position
	e.Email = strings.ToLower(strings.TrimSpace(email))
	if !hiredAt.IsZero() {
		e.HiredAt = hiredAt.UTC()
	}
	e.UpdatedAt = now.UTC()
	return e.Validate()
}
