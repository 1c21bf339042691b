package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxOrderQuantity bounds Order.Quantity.
const MaxOrderQuantity = 1000

// Order records a purchase of a Good by a Buyer at the price current when it was placed.
type Order struct {
	ID        uuid.UUID  `json:"id"`
	BuyerID   uuid.UUID  `json:"buyer_id"`
	GoodID    uuid.UUID  `json:"good_id"`
	Quantity  int        `json:"quantity"`
	UnitPrice int64      `json:"unit_price"`
	Total     int64      `json:"total"`
	Currency  string     `json:"currency"`
	SellerID  *uuid.UUID `json:"seller_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewOrder creates an Order priced from p. A Total that would not fit in
// an int64 is rejected with ErrTotalOverflow.
func NewOrder(buyerID, goodID uuid.UUID, quantity int, p *Price, sellerID *uuid.UUID, now time.Time) (*Order, error) {
	o := &Order{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		GoodID:    goodID,
		Quantity:  quantity,
		UnitPrice: p.Amount,
		Total:     p.Amount * int64(quantity),
		Currency:  p.Currency,
		SellerID:  sellerID,
		CreatedAt: now.UTC(),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks if the Order has valid data.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyID
	}
	if o.BuyerID == uuid.Nil || o.GoodID == uuid.Nil {
		return ErrEmptyReference
	}
	if o.Quantity < 1 || o.Quantity > MaxOrderQuantity {
		return ErrInvalidQuantity
	}
	if o.UnitPrice <= 0 {
		return ErrInvalidAmount
	}
	if !currencyPattern.MatchString(o.Currency) {
		return ErrInvalidCurrency
	}
	// Checked before multiplying so a wrapped product cannot match Total.
	if o.UnitPrice > math.MaxInt64/int64(o.Quantity) {
		return ErrTotalOverflow
	}
	if o.Total != o.UnitPrice*int64(o.Quantity) {
		return ErrInvalidTotal
	}
	return nil
}
