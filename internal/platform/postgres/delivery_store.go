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

// PostgresDeliveryStore implements store.DeliveryStore.
type PostgresDeliveryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeliveryStore creates a PostgresDeliveryStore. If logger is nil, the default logger is used.
func NewPostgresDeliveryStore(db store.DBTX, logger *slog.Logger) *PostgresDeliveryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeliveryStore{
		db:     db,
		logger: logger.With(slog.String("component", "delivery_store")),
	}
}

var _ store.DeliveryStore = (*PostgresDeliveryStore)(nil)

const deliveryColumns = `id, order_id, buyer_id, address, status, courier_id, created_at, updated_at`

// scanDelivery reads one row selected with deliveryColumns, in that order.
func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var (
		d       domain.Delivery
		status  string
		courier uuid.NullUUID
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.BuyerID, &d.Address, &status, &courier, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DeliveryStatus(status)
	d.CourierID = fromNullUUID(courier)
	return &d, nil
}

// Create implements store.DeliveryStore.Create
func (s *PostgresDeliveryStore) Create(ctx context.Context, delivery *domain.Delivery) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := delivery.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, order_id, buyer_id, address, status, courier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, delivery.ID, delivery.OrderID, delivery.BuyerID, delivery.Address, string(delivery.Status),
		toNullUUID(delivery.CourierID), delivery.CreatedAt, delivery.UpdatedAt)
	if err != nil {
		log.Error("failed to create delivery",
			slog.String("error", err.Error()),
			slog.String("order_id", delivery.OrderID.String()))
		return MapError(err)
	}

	log.Info("delivery created",
		slog.String("delivery_id", delivery.ID.String()),
		slog.String("order_id", delivery.OrderID.String()))
	return nil
}

// GetByID implements store.DeliveryStore.GetByID
func (s *PostgresDeliveryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	delivery, err := scanDelivery(s.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrDeliveryNotFound, nil)
	}
	return delivery, nil
}

// GetByIDForUpdate implements store.DeliveryStore.GetByIDForUpdate.
// It must run inside a transaction for the lock to outlive the statement.
func (s *PostgresDeliveryStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	delivery, err := scanDelivery(s.db.QueryRowContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrDeliveryNotFound, nil)
	}
	return delivery, nil
}

// List implements store.DeliveryStore.List
// A nil buyerID lists deliveries for every buyer, newest first.
func (s *PostgresDeliveryStore) List(
	ctx context.Context,
	buyerID *uuid.UUID,
	page store.Page,
) ([]*domain.Delivery, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanDelivery, `
		SELECT `+deliveryColumns+` FROM deliveries
		WHERE $1::uuid IS NULL OR buyer_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, toNullUUID(buyerID), page.Limit, page.Offset)
}

// Update implements store.DeliveryStore.Update
// It writes address, status and courier; the caller has already validated the transition.
func (s *PostgresDeliveryStore) Update(ctx context.Context, delivery *domain.Delivery) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := delivery.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE deliveries SET address = $1, status = $2, courier_id = $3, updated_at = $4
		WHERE id = $5
	`, delivery.Address, string(delivery.Status), toNullUUID(delivery.CourierID), delivery.UpdatedAt, delivery.ID)
	if err != nil {
		log.Error("failed to update delivery",
			slog.String("error", err.Error()),
			slog.String("delivery_id", delivery.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrDeliveryNotFound); err != nil {
		return err
	}

	log.Debug("delivery updated",
		slog.String("delivery_id", delivery.ID.String()),
		slog.String("status", string(delivery.Status)))
	return nil
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresDeliveryStore) WithTx(tx *sql.Tx) store.DeliveryStore {
	return &PostgresDeliveryStore{db: tx, logger: s.logger}
}
