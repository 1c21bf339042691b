package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// NotificationService manages messages addressed to buyers.
type NotificationService interface {
	// Create stores a notification for an existing buyer.
	Create(ctx context.Context, buyerID uuid.UUID, message string) (*domain.Notification, error)
	// ListForBuyer returns unread notifications first, newest first within each group.
	ListForBuyer(ctx context.Context, buyerID uuid.UUID, page store.Page) ([]*domain.Notification, error)
	// MarkRead sets ReadAt. Marking an already read notification keeps the original time.
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PurgeRead deletes read notifications created before the cutoff and
	// returns how many were removed.
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

type notificationService struct {
	notifications store.NotificationStore
	buyers        store.BuyerStore
	clock         clockwork.Clock
	logger        *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(
	notifications store.NotificationStore,
	buyers store.BuyerStore,
	clock clockwork.Clock,
	logger *slog.Logger,
) NotificationService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		notifications: notifications,
		buyers:        buyers,
		clock:         clock,
		logger:        logger.With("component", "notification_service"),
	}
}

// Create implements NotificationService.Create
func (s *notificationService) Create(ctx context.Context, buyerID uuid.UUID, message string) (*domain.Notification, error) {
	n, err := domain.NewNotification(buyerID, message, s.clock.Now())
	if err != nil {
		return nil, err
	}
	// Report an unknown buyer as 404 instead of a foreign key error
	if _, err := s.buyers.GetByID(ctx, buyerID); err != nil {
		return nil, fmt.Errorf("failed to retrieve buyer for notification: %w", err)
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("notification created",
		"notification_id", n.ID,
		"buyer_id", buyerID)
	return n, nil
}

// ListForBuyer implements NotificationService.ListForBuyer
// Unread notifications are listed first.
func (s *notificationService) ListForBuyer(
	ctx context.Context,
	buyerID uuid.UUID,
	page store.Page,
) ([]*domain.Notification, error) {
	list, err := s.notifications.ListByBuyer(ctx, buyerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// MarkRead implements NotificationService.MarkRead
// Marking an already read notification keeps the first read time.
func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if err := s.notifications.MarkRead(ctx, id, s.clock.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	// Reload to return the stored read_at
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notification: %w", err)
	}
	return n, nil
}

// Delete implements NotificationService.Delete
func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// PurgeRead implements NotificationService.PurgeRead
// It backs the retention job and returns the number of rows removed.
func (s *notificationService) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.notifications.DeleteReadBefore(ctx, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge read notifications: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("purged read notifications",
		"deleted", n,
		"before", before.UTC())
	return n, nil
}
