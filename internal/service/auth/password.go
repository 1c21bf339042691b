package auth

import (
	"errors"
	"fmt"

	"github.com/phrazzld/crud-suite/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Password length limits. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// ErrPasswordLength is returned by Hash for passwords outside the allowed length.
var ErrPasswordLength = fmt.Errorf(
	"%w: password must be %d-%d characters",
	domain.ErrValidation, MinPasswordLength, MaxPasswordLength,
)

// ErrIncorrectPassword is returned by Compare when the password does not match the hash.
var ErrIncorrectPassword = errors.New("incorrect password")

// PasswordHasher hashes passwords and compares them with stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil on a match and ErrIncorrectPassword otherwise.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. Costs outside bcrypt's range use bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return "", ErrPasswordLength
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements PasswordHasher.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrIncorrectPassword
	}
	return fmt.Errorf("failed to compare password: %w", err)
}
