package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPriceAmount is the largest Amount for which an order of
// MaxOrderQuantity units still has a representable Total.
const MaxPriceAmount = math.MaxInt64 / MaxOrderQuantity

// Price is the amount charged for a Good from ValidFrom onwards.
// Amount is expressed in minor currency units (cents).
type Price struct {
	ID        uuid.UUID `json:"id"`
	GoodID    uuid.UUID `json:"good_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ValidFrom time.Time `json:"valid_from"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPrice creates a Price. A zero validFrom means the price applies from now.
func NewPrice(goodID uuid.UUID, amount int64, currency string, validFrom, now time.Time) (*Price, error) {
	if validFrom.IsZero() {
		validFrom = now
	}
	p := &Price{
		ID:        uuid.New(),
		GoodID:    goodID,
		Amount:    amount,
		Currency:  strings.ToUpper(strings.TrimSpace(currency)),
		ValidFrom: validFrom.UTC(),
		CreatedAt: now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Price has valid data.
func (p *Price) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyID
	}
	if p.GoodID == uuid.Nil {
		return ErrEmptyReference
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Amount > MaxPriceAmount {
		return ErrAmountTooLarge
	}
	if !currencyPattern.MatchString(p.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}
