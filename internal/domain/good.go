package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Good is an item sold by the shop.
type Good struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewGood creates a Good. The SKU is normalised to upper case.
func NewGood(sku, name, description string, now time.Time) (*Good, error) {
	g := &Good{
		ID:          uuid.New(),
		SKU:         strings.ToUpper(strings.TrimSpace(sku)),
		Name:        name,
		Description: description,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks if the Good has valid data.
func (g *Good) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyID
	}
	if g.SKU == "" {
		return ErrEmptySKU
	}
	return validName(g.Name, 200)
}

// Update replaces the good's catalogue data.
func (g *Good) Update(sku, name, description string, now time.Time) error {
	g.SKU = strings.ToUpper(strings.TrimSpace(sku))
	g.Name = name
	g.Description = description
	g.UpdatedAt = now.UTC()
	return g.Validate()
}
