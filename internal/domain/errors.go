package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every domain validation error.
var ErrValidation = errors.New("validation failed")

// validationError wraps ErrValidation so errors.Is(err, ErrValidation) holds
// for every error below. The API returns msg to the client verbatim.
func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Field-level validation errors.
var (
	// Identity and accounts
	ErrEmptyID           = validationError("id cannot be empty")
	ErrEmptyLogin        = validationError("login cannot be empty")
	ErrInvalidLogin      = validationError("login must be 3-64 characters of letters, digits, '.', '_' or '-'")
	ErrEmptyPasswordHash = validationError("password hash cannot be empty")
	ErrInvalidRole       = validationError("invalid role")

	// Text and enumerated fields
	ErrEmptyTitle    = validationError("title cannot be empty")
	ErrTitleTooLong  = validationError("title is too long")
	ErrEmptyBody     = validationError("body cannot be empty")
	ErrEmptyName     = validationError("name cannot be empty")
	ErrNameTooLong   = validationError("name is too long")
	ErrInvalidEmail  = validationError("invalid email format")
	ErrInvalidStatus = validationError("invalid status")

	// References
	ErrEmptyOwner     = validationError("owner cannot be empty")
	ErrEmptyReference = validationError("referenced entity id cannot be empty")

	// Shop
	ErrEmptySKU        = validationError("sku cannot be empty")
	ErrInvalidAmount   = validationError("amount must be positive")
	ErrInvalidCurrency = validationError("currency must be a three-letter ISO 4217 code")
	ErrInvalidQuantity = validationError("quantity must be between 1 and 1000")
	ErrEmptyAddress    = validationError("address cannot be empty")
	ErrEmptyMessage    = validationError("message cannot be empty")
	ErrInvalidTotal    = validationError("total does not match unit price times quantity")
	ErrAmountTooLarge  = validationError("amount is too large")
	ErrTotalOverflow   = validationError("order total is too large")
)
