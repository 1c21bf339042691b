package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the shipping state of a Delivery.
type DeliveryStatus string

// Delivery statuses.
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// ErrInvalidTransition is returned when a delivery cannot move to the requested status.
var ErrInvalidTransition = errors.New("invalid delivery status transition")

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending: {DeliveryShipped, DeliveryCancelled},
	DeliveryShipped: {DeliveryDelivered, DeliveryCancelled},
}

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a delivery in status s may move to next.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Delivery tracks shipment of an Order to a Buyer.
type Delivery struct {
	ID        uuid.UUID      `json:"id"`
	OrderID   uuid.UUID      `json:"order_id"`
	BuyerID   uuid.UUID      `json:"buyer_id"`
	Address   string         `json:"address"`
	Status    DeliveryStatus `json:"status"`
	CourierID *uuid.UUID     `json:"courier_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDelivery creates a pending Delivery for an order.
func NewDelivery(orderID, buyerID uuid.UUID, address string, now time.Time) (*Delivery, error) {
	d := &Delivery{
		ID:        uuid.New(),
		OrderID:   orderID,
		BuyerID:   buyerID,
		Address:   strings.TrimSpace(address),
		Status:    DeliveryPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks if the Delivery has valid data.
func (d *Delivery) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyID
	}
	if d.OrderID == uuid.Nil || d.BuyerID == uuid.Nil {
		return ErrEmptyReference
	}
	if d.Address == "" {
		return ErrEmptyAddress
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// TransitionTo moves the delivery to next, enforcing the allowed status graph.
func (d *Delivery) TransitionTo(next DeliveryStatus, now time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if !d.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, next)
	}
	d.Status = next
	d.UpdatedAt = now.UTC()
	return nil
}

// AssignCourier sets the employee responsible for the delivery.
// Finished deliveries cannot be reassigned.
func (d *Delivery) AssignCourier(courierID uuid.UUID, now time.Time) error {
	if courierID == uuid.Nil {
		return ErrEmptyReference
	}
	if d.Status == DeliveryDelivered || d.Status == DeliveryCancelled {
		return fmt.Errorf("%w: cannot assign a courier to a %s delivery", ErrInvalidTransition, d.Status)
	}
	d.CourierID = &courierID
	d.UpdatedAt = now.UTC()
	return nil
}
