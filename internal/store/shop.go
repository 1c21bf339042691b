package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// BuyerStore persists shop buyers.
type BuyerStore interface {
	// Create returns ErrBuyerEmailExists on a duplicate email.
	Create(ctx context.Context, buyer *domain.Buyer) error
	// GetByID returns ErrBuyerNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error)
	List(ctx context.Context, page Page) ([]*domain.Buyer, error)
	Update(ctx context.Context, buyer *domain.Buyer) error
	// Delete returns ErrConflict while orders still reference the buyer.
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) BuyerStore
}

// EmployeeStore persists shop staff.
type EmployeeStore interface {
	// Create returns ErrEmployeeEmailExists on a duplicate email.
	Create(ctx context.Context, employee *domain.Employee) error
	// GetByID returns ErrEmployeeNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, page Page) ([]*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) EmployeeStore
}

// GoodStore persists the goods catalogue.
type GoodStore interface {
	// Create returns ErrSKUExists on a duplicate SKU.
	Create(ctx context.Context, good *domain.Good) error
	// GetByID returns ErrGoodNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Good, error)
	List(ctx context.Context, page Page) ([]*domain.Good, error)
	Update(ctx context.Context, good *domain.Good) error
	// Delete returns ErrConflict while orders still reference the good.
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) GoodStore
}

// PriceStore persists the price history of goods.
type PriceStore interface {
	// Create returns ErrInvalidEntity if the good does not exist.
	Create(ctx context.Context, price *domain.Price) error
	// Current returns the price with the latest valid_from not after at.
	// Returns ErrPriceNotFound when the good has no such price.
	Current(ctx context.Context, goodID uuid.UUID, at time.Time) (*domain.Price, error)
	// History returns every price of a good, latest valid_from first.
	History(ctx context.Context, goodID uuid.UUID, page Page) ([]*domain.Price, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) PriceStore
}

// DeliveryStore persists deliveries.
type DeliveryStore interface {
	Create(ctx context.Context, delivery *domain.Delivery) error
	// GetByID returns ErrDeliveryNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// GetByIDForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends. Read-modify-write callers use it so
	// concurrent status changes are applied one after another.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	// List returns deliveries newest first; a nil buyerID lists every buyer.
	List(ctx context.Context, buyerID *uuid.UUID, page Page) ([]*domain.Delivery, error)
	// Update overwrites address, status and courier.
	Update(ctx context.Context, delivery *domain.Delivery) error
	WithTx(tx *sql.Tx) DeliveryStore
}

// NotificationStore persists buyer notifications.
type NotificationStore interface {
	Create(ctx context.Context, notification *domain.Notification) error
	// GetByID returns ErrNotificationNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	// ListByBuyer returns unread notifications first, then newest first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, page Page) ([]*domain.Notification, error)
	// MarkRead sets read_at if it is not already set. Returns ErrNotificationNotFound if absent.
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteReadBefore removes read notifications created before cutoff and reports how many were removed.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	WithTx(tx *sql.Tx) NotificationStore
}

// OrderStore persists trade orders.
type OrderStore interface {
	// Create returns ErrInvalidEntity if the buyer, good or seller does not exist.
	Create(ctx context.Context, order *domain.Order) error
	// GetByID returns ErrOrderNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// List returns orders newest first; a nil buyerID lists every buyer.
	List(ctx context.Context, buyerID *uuid.UUID, page Page) ([]*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) OrderStore
}
