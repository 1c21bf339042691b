package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// PostgresOrderStore implements store.OrderStore.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a PostgresOrderStore. If logger is nil, the default logger is used.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

var _ store.OrderStore = (*PostgresOrderStore)(nil)

const orderColumns = `id, buyer_id, good_id, quantity, unit_price, total, currency, seller_id, created_at`

// scanOrder reads one row selected with orderColumns, in that order.
func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		seller uuid.NullUUID
	)
	err := row.Scan(&o.ID, &o.BuyerID, &o.GoodID, &o.Quantity, &o.UnitPrice, &o.Total,
		&o.Currency, &seller, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.SellerID = fromNullUUID(seller)
	return &o, nil
}

// Create implements store.OrderStore.Create.
// Returns store.ErrInvalidEntity if the buyer, good or seller does not exist.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := order.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, buyer_id, good_id, quantity, unit_price, total, currency, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, order.ID, order.BuyerID, order.GoodID, order.Quantity, order.UnitPrice, order.Total,
		order.Currency, toNullUUID(order.SellerID), order.CreatedAt)
	if err != nil {
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()),
			slog.String("buyer_id", order.BuyerID.String()))
		return MapError(err)
	}

	log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.Int64("total", order.Total),
		slog.String("currency", order.Currency))
	return nil
}

// GetByID implements store.OrderStore.GetByID
func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrOrderNotFound, nil)
	}
	return order, nil
}

// List implements store.OrderStore.List
// A nil buyerID lists every order, newest first.
func (s *PostgresOrderStore) List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Order, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanOrder, `
		SELECT `+orderColumns+` FROM orders
		WHERE $1::uuid IS NULL OR buyer_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, toNullUUID(buyerID), page.Limit, page.Offset)
}

// Delete implements store.OrderStore.Delete. The order's delivery cascades.
func (s *PostgresOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrOrderNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{db: tx, logger: s.logger}
}
