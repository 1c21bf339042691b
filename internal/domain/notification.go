package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to a Buyer.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	BuyerID   uuid.UUID  `json:"buyer_id"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewNotification creates an unread Notification.
func NewNotification(buyerID uuid.UUID, message string, now time.Time) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		Message:   message,
		CreatedAt: now.UTC(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyID
	}
	if n.BuyerID == uuid.Nil {
		return ErrEmptyReference
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// IsRead reports whether the notification has been marked as read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
