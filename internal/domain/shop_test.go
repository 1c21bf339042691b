package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuyer(t *testing.T) {
	t.Parallel()

	b, err := NewBuyer("Jane Doe", "  Jane@Example.com ", "+1 555 0100", "1 Main St", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", b.Email)

	_, err = NewBuyer("Jane", "not-an-email", "", "", fixedNow)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewBuyer("Jane", "jane@localhost", "", "", fixedNow)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewBuyer("", "jane@example.com", "", "", fixedNow)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewEmployee(t *testing.T) {
	t.Parallel()

	e, err := NewEmployee("John Roe", "Courier", "john@example.com", time.Time{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, e.HiredAt, "zero hire date defaults to now")

	hired := fixedNow.AddDate(-1, 0, 0)
	e, err = NewEmployee("John Roe", "Courier", "john@example.com", hired, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, hired, e.HiredAt)

	_, err = NewEmployee("John Roe", "", "john@example.com", hired, fixedNow)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewGood(t *testing.T) {
	t.Parallel()

	g, err := NewGood(" ab-100 ", "Widget", "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "AB-100", g.SKU)

	_, err = NewGood("", "Widget", "", fixedNow)
	assert.ErrorIs(t, err, ErrEmptySKU)
}

func TestNewPrice(t *testing.T) {
	t.Parallel()

	good := uuid.New()

	p, err := NewPrice(good, 1999, "usd", time.Time{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, fixedNow, p.ValidFrom)

	_, err = NewPrice(good, 0, "USD", time.Time{}, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPrice(good, 100, "dollars", time.Time{}, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewPrice(uuid.Nil, 100, "USD", time.Time{}, fixedNow)
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestDeliveryTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from DeliveryStatus
		to   DeliveryStatus
		ok   bool
	}{
		{DeliveryPending, DeliveryShipped, true},
		{DeliveryPending, DeliveryCancelled, true},
		{DeliveryShipped, DeliveryDelivered, true},
		{DeliveryShipped, DeliveryCancelled, true},
		{DeliveryPending, DeliveryDelivered, false},
		{DeliveryDelivered, DeliveryCancelled, false},
		{DeliveryCancelled, DeliveryPending, false},
		{DeliveryShipped, DeliveryPending, false},
	}

	for _, tt := range tests {
		d, err := NewDelivery(uuid.New(), uuid.New(), "1 Main St", fixedNow)
		require.NoError(t, err)
		d.Status = tt.from

		later := fixedNow.Add(time.Minute)
		err = d.TransitionTo(tt.to, later)
		if tt.ok {
			require.NoError(t, err, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.to, d.Status)
			assert.Equal(t, later, d.UpdatedAt)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.from, d.Status)
		}
	}

	d, err := NewDelivery(uuid.New(), uuid.New(), "1 Main St", fixedNow)
	require.NoError(t, err)
	assert.ErrorIs(t, d.TransitionTo("lost", fixedNow), ErrInvalidStatus)

	_, err = NewDelivery(uuid.New(), uuid.New(), "  ", fixedNow)
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestNewNotification(t *testing.T) {
	t.Parallel()

	n, err := NewNotification(uuid.New(), "Your order shipped", fixedNow)
	require.NoError(t, err)
	assert.False(t, n.IsRead())

	read := fixedNow
	n.ReadAt = &read
	assert.True(t, n.IsRead())

	_, err = NewNotification(uuid.New(), " ", fixedNow)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestNewOrder(t *testing.T) {
	t.Parallel()

	price := &Price{ID: uuid.New(), GoodID: uuid.New(), Amount: 250, Currency: "EUR"}

	o, err := NewOrder(uuid.New(), price.GoodID, 4, price, nil, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(250), o.UnitPrice)
	assert.Equal(t, int64(1000), o.Total)
	assert.Equal(t, "EUR", o.Currency)

	_, err = NewOrder(uuid.New(), price.GoodID, 0, price, nil, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder(uuid.New(), price.GoodID, MaxOrderQuantity+1, price, nil, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	o.Total = 1
	assert.ErrorIs(t, o.Validate(), ErrInvalidTotal)
}

func TestNewOrder_TotalOverflow(t *testing.T) {
	t.Parallel()

	// Bypasses NewPrice, which would reject the amount.
	price := &Price{ID: uuid.New(), GoodID: uuid.New(), Amount: math.MaxInt64 / 2, Currency: "USD"}

	o, err := NewOrder(uuid.New(), price.GoodID, 3, price, nil, fixedNow)
	assert.ErrorIs(t, err, ErrTotalOverflow)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, o)

	price.Amount = MaxPriceAmount
	o, err = NewOrder(uuid.New(), price.GoodID, MaxOrderQuantity, price, nil, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxPriceAmount*MaxOrderQuantity), o.Total)
	assert.Positive(t, o.Total)
}

func TestNewPrice_AmountUpperBound(t *testing.T) {
	t.Parallel()

	good := uuid.New()

	_, err := NewPrice(good, MaxPriceAmount, "USD", time.Time{}, fixedNow)
	require.NoError(t, err)

	_, err = NewPrice(good, MaxPriceAmount+1, "USD", time.Time{}, fixedNow)
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	_, err = NewPrice(good, math.MaxInt64/2, "USD", time.Time{}, fixedNow)
	assert.ErrorIs(t, err, ErrValidation)
}
