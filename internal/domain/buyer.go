package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buyer is a customer of the shop.
type Buyer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`   // Stored lower-cased; unique
	Phone     string    `json:"phone"`   // Free-form, not validated
	Address   string    `json:"address"` // Default shipping address for orders
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBuyer creates a Buyer with a new ID and the given timestamp.
// Returns an error if validation fails.
func NewBuyer(name, email, phone, address string, now time.Time) (*Buyer, error) {
	b := &Buyer{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Phone:     phone,
		Address:   address,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks if the Buyer has valid data.
func (b *Buyer) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyID
	}
	if err := validName(b.Name, 200); err != nil {
		return err
	}
	if !validEmail(b.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Update replaces the buyer's contact details.
func (b *Buyer) Update(name, email, phone, address string, now time.Time) error {
	b.Name = name
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Phone = phone
	b.Address = address
	b.UpdatedAt = now.UTC()
	return b.Validate()
}
