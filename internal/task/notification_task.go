package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// NotificationCreator stores notifications. service.NotificationService
// satisfies it.
type NotificationCreator interface {
	Create(ctx context.Context, buyerID uuid.UUID, message string) (*domain.Notification, error)
}

// NotificationTask creates one notification for a buyer.
type NotificationTask struct {
	id      uuid.UUID
	buyerID uuid.UUID
	message string
	creator NotificationCreator
}

// NewNotificationTask creates a task that will store message for buyerID.
func NewNotificationTask(creator NotificationCreator, buyerID uuid.UUID, message string) (*NotificationTask, error) {
	if creator == nil {
		return nil, errors.New("notification creator cannot be nil")
	}
	if buyerID == uuid.Nil {
		return nil, domain.ErrEmptyReference
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	return &NotificationTask{
		id:      uuid.New(),
		buyerID: buyerID,
		message: message,
		creator: creator,
	}, nil
}

// ID implements Task.
func (t *NotificationTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *NotificationTask) Type() string { return TaskTypeNotification }

// BuyerID returns the recipient.
func (t *NotificationTask) BuyerID() uuid.UUID { return t.buyerID }

// Message returns the notification text.
func (t *NotificationTask) Message() string { return t.message }

// Execute implements Task.
func (t *NotificationTask) Execute(ctx context.Context) error {
	if _, err := t.creator.Create(ctx, t.buyerID, t.message); err != nil {
		return fmt.Errorf("failed to create notification for buyer %s: %w", t.buyerID, err)
	}
	return nil
}

var _ Task = (*NotificationTask)(nil)
