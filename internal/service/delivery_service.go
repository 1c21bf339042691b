package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/events"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// DeliveryService tracks the shipment of orders.
type DeliveryService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// List returns deliveries of one buyer, or of all buyers when buyerID is nil.
	List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Delivery, error)
	AssignCourier(ctx context.Context, id, employeeID uuid.UUID) (*domain.Delivery, error)
	// UpdateStatus moves the delivery along its state machine and emits
	// delivery.status_changed once committed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DeliveryStatus) (*domain.Delivery, error)
}

type deliveryService struct {
	deliveries store.DeliveryStore
	employees  store.EmployeeStore
	db         store.Beginner
	emitter    events.EventEmitter
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewDeliveryService creates a DeliveryService. A nil emitter discards events.
func NewDeliveryService(
	deliveries store.DeliveryStore,
	employees store.EmployeeStore,
	db store.Beginner,
	emitter events.EventEmitter,
	clock clockwork.Clock,
	logger *slog.Logger,
) DeliveryService {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &deliveryService{
		deliveries: deliveries,
		employees:  employees,
		db:         db,
		emitter:    emitter,
		clock:      clock,
		logger:     logger.With("component", "delivery_service"),
	}
}

// Get implements DeliveryService.Get
func (s *deliveryService) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	d, err := s.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve delivery: %w", err)
	}
	return d, nil
}

// List implements DeliveryService.List
func (s *deliveryService) List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Delivery, error) {
	list, err := s.deliveries.List(ctx, buyerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return list, nil
}

// AssignCourier implements DeliveryService.AssignCourier
// The employee and the locked delivery row are read in one transaction.
func (s *deliveryService) AssignCourier(ctx context.Context, id, employeeID uuid.UUID) (*domain.Delivery, error) {
	var delivery *domain.Delivery
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.employees.WithTx(tx).GetByID(ctx, employeeID); err != nil {
			return NewServiceError("assign_courier", "failed to retrieve courier", err)
		}

		// Lock the delivery so a concurrent cancel cannot slip in between
		txStore := s.deliveries.WithTx(tx)
		d, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return NewServiceError("assign_courier", "failed to retrieve delivery", err)
		}
		if err := d.AssignCourier(employeeID, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, d); err != nil {
			return NewServiceError("assign_courier", "failed to save delivery", err)
		}
		delivery = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("courier assigned",
		"delivery_id", id,
		"courier_id", employeeID)
	return delivery, nil
}

// UpdateStatus implements DeliveryService.UpdateStatus
// It applies the transition under a row lock and emits delivery.status_changed after commit.
func (s *deliveryService) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.DeliveryStatus,
) (*domain.Delivery, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Unknown statuses are a 400, not a 409
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	var (
		delivery *domain.Delivery
		from     domain.DeliveryStatus
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.deliveries.WithTx(tx)

		// The row lock serializes concurrent transitions, so the second
		// one is validated against the status the first one wrote.
		d, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return NewServiceError("update_delivery_status", "failed to retrieve delivery", err)
		}
		// Remember the old status for the event
		from = d.Status
		if err := d.TransitionTo(status, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, d); err != nil {
			return NewServiceError("update_delivery_status", "failed to save delivery", err)
		}
		delivery = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("delivery status changed",
		"delivery_id", id,
		"from", from,
		"to", delivery.Status)

	s.emit(ctx, events.TypeDeliveryStatusChanged, events.DeliveryStatusChanged{
		DeliveryID: delivery.ID,
		OrderID:    delivery.OrderID,
		BuyerID:    delivery.BuyerID,
		From:       string(from),
		To:         string(delivery.Status),
	})
	return delivery, nil
}

func (s *deliveryService) emit(ctx context.Context, eventType string, payload interface{}) {
	emitEvent(ctx, s.emitter, s.clock, logger.FromContextOrDefault(ctx, s.logger), eventType, payload)
}
