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

// PlaceOrderInput describes a purchase. An empty Address ships to the
// buyer's address on file.
type PlaceOrderInput struct {
	BuyerID  uuid.UUID
	GoodID   uuid.UUID
	Quantity int
	Address  string
	SellerID *uuid.UUID
}

// TradeService places and manages orders.
type TradeService interface {
	// PlaceOrder prices the good at its current price, stores the order and a
	// pending delivery in one transaction, then emits order.placed.
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, *domain.Delivery, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// ListOrders returns orders of one buyer, or of all buyers when buyerID is nil.
	ListOrders(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Order, error)
	// DeleteOrder removes the order and its delivery.
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// TradeStores groups the stores PlaceOrder reads and writes.
type TradeStores struct {
	Orders     store.OrderStore
	Deliveries store.DeliveryStore
	Buyers     store.BuyerStore
	Goods      store.GoodStore
	Prices     store.PriceStore
	Employees  store.EmployeeStore
}

type tradeService struct {
	stores  TradeStores
	db      store.Beginner
	emitter events.EventEmitter
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewTradeService creates a TradeService. A nil emitter discards events.
func NewTradeService(
	stores TradeStores,
	db store.Beginner,
	emitter events.EventEmitter,
	clock clockwork.Clock,
	logger *slog.Logger,
) TradeService {
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tradeService{
		stores:  stores,
		db:      db,
		emitter: emitter,
		clock:   clock,
		logger:  logger.With("component", "trade_service"),
	}
}

// PlaceOrder implements TradeService.PlaceOrder
// It prices the order, stores it with its pending delivery in one transaction
// and emits order.placed after commit.
func (s *tradeService) PlaceOrder(
	ctx context.Context,
	in PlaceOrderInput,
) (*domain.Order, *domain.Delivery, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Fail fast before opening a transaction
	if in.Quantity < 1 || in.Quantity > domain.MaxOrderQuantity {
		return nil, nil, domain.ErrInvalidQuantity
	}

	// One timestamp for the order, its delivery and the price lookup
	now := s.clock.Now()
	var (
		order    *domain.Order
		delivery *domain.Delivery
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Resolve every reference first so a missing one is a 404, not a FK error
		buyer, err := s.stores.Buyers.WithTx(tx).GetByID(ctx, in.BuyerID)
		if err != nil {
			return NewServiceError("place_order", "failed to retrieve buyer", err)
		}
		if _, err := s.stores.Goods.WithTx(tx).GetByID(ctx, in.GoodID); err != nil {
			return NewServiceError("place_order", "failed to retrieve good", err)
		}
		price, err := currentPrice(ctx, s.stores.Prices.WithTx(tx), in.GoodID, now)
		if err != nil {
			return err
		}
		if in.SellerID != nil {
			if _, err := s.stores.Employees.WithTx(tx).GetByID(ctx, *in.SellerID); err != nil {
				return NewServiceError("place_order", "failed to retrieve seller", err)
			}
		}

		// The unit price is fixed at the moment the order is placed
		o, err := domain.NewOrder(buyer.ID, in.GoodID, in.Quantity, price, in.SellerID, now)
		if err != nil {
			return err
		}
		if err := s.stores.Orders.WithTx(tx).Create(ctx, o); err != nil {
			return NewServiceError("place_order", "failed to save order", err)
		}

		// Ship to the buyer's address unless the order names another one
		address := in.Address
		if address == "" {
			address = buyer.Address
		}
		d, err := domain.NewDelivery(o.ID, buyer.ID, address, now)
		if err != nil {
			return err
		}
		if err := s.stores.Deliveries.WithTx(tx).Create(ctx, d); err != nil {
			return NewServiceError("place_order", "failed to save delivery", err)
		}

		order, delivery = o, d
		return nil
	})
	if err != nil {
		// Missing references are client errors and not worth an ERROR line
		if !store.IsNotFoundError(err) {
			log.Error("failed to place order", "error", err, "buyer_id", in.BuyerID, "good_id", in.GoodID)
		}
		return nil, nil, err
	}

	log.Info("order placed",
		"order_id", order.ID,
		"buyer_id", order.BuyerID,
		"total", order.Total,
		"currency", order.Currency)

	// Emit after commit so subscribers never see a rolled-back order
	emitEvent(ctx, s.emitter, s.clock, log, events.TypeOrderPlaced, events.OrderPlaced{
		OrderID:    order.ID,
		BuyerID:    order.BuyerID,
		GoodID:     order.GoodID,
		DeliveryID: delivery.ID,
		Quantity:   order.Quantity,
		Total:      order.Total,
		Currency:   order.Currency,
	})
	return order, delivery, nil
}

// GetOrder implements TradeService.GetOrder
func (s *tradeService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.stores.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return o, nil
}

// ListOrders implements TradeService.ListOrders
func (s *tradeService) ListOrders(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Order, error) {
	orders, err := s.stores.Orders.List(ctx, buyerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// DeleteOrder implements TradeService.DeleteOrder
func (s *tradeService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.stores.Orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("order deleted", "order_id", id)
	return nil
}
