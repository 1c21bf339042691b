package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/events"
	"github.com/phrazzld/crud-suite/internal/platform/metrics"
)

// NotificationEventHandler implements events.EventHandler. It turns
// order.placed and delivery.status_changed events into notification tasks
// for the buyer and enqueues them. Other event types are ignored.
type NotificationEventHandler struct {
	creator NotificationCreator
	queue   TaskQueueWriter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewNotificationEventHandler creates the handler. m may be nil.
func NewNotificationEventHandler(
	creator NotificationCreator,
	queue TaskQueueWriter,
	logger *slog.Logger,
	m *metrics.Metrics,
) *NotificationEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationEventHandler{
		creator: creator,
		queue:   queue,
		logger:  logger.With("component", "notification_event_handler"),
		metrics: m,
	}
}

// HandleEvent implements events.EventHandler.
func (h *NotificationEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	buyerID, message, err := notificationFor(event)
	if err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID, "event_type", event.Type)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if message == "" {
		h.logger.Debug("ignoring event with unsupported type", "event_type", event.Type, "event_id", event.ID)
		return nil
	}

	// The task creates the notification when a worker runs it
	task, err := NewNotificationTask(h.creator, buyerID, message)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	// Enqueue does not block; a full queue drops the notification
	if err := h.queue.Enqueue(task); err != nil {
		if errors.Is(err, ErrQueueFull) && h.metrics != nil {
			h.metrics.NotificationTasks.WithLabelValues(ResultDropped).Inc()
		}
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"buyer_id", buyerID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("notification task submitted",
		"task_id", task.ID(),
		"buyer_id", buyerID,
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// notificationFor returns the recipient and text for an event. An empty
// message means the event type carries no notification.
func notificationFor(event *events.Event) (uuid.UUID, string, error) {
	switch event.Type {
	case events.TypeOrderPlaced:
		var p events.OrderPlaced
		if err := event.UnmarshalPayload(&p); err != nil {
			return uuid.Nil, "", err
		}
		return p.BuyerID, fmt.Sprintf("Order %s placed: %d item(s), total %s.",
			shortID(p.OrderID), p.Quantity, FormatAmount(p.Total, p.Currency)), nil

	case events.TypeDeliveryStatusChanged:
		var p events.DeliveryStatusChanged
		if err := event.UnmarshalPayload(&p); err != nil {
			return uuid.Nil, "", err
		}
		return p.BuyerID, fmt.Sprintf("Delivery of order %s is now %s.", shortID(p.OrderID), p.To), nil
	}
	return uuid.Nil, "", nil
}

// FormatAmount renders an amount in minor units, e.g. 4999 EUR as "49.99 EUR".
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

var _ events.EventHandler = (*NotificationEventHandler)(nil)
