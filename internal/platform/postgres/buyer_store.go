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

// PostgresBuyerStore implements store.BuyerStore.
type PostgresBuyerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBuyerStore creates a PostgresBuyerStore. If logger is nil, the default logger is used.
func NewPostgresBuyerStore(db store.DBTX, logger *slog.Logger) *PostgresBuyerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBuyerStore{
		db:     db,
		logger: logger.With(slog.String("component", "buyer_store")),
	}
}

var _ store.BuyerStore = (*PostgresBuyerStore)(nil)

const buyerColumns = `id, name, email, phone, address, created_at, updated_at`

// scanBuyer reads one row selected with buyerColumns, in that order.
func scanBuyer(row rowScanner) (*domain.Buyer, error) {
	var b domain.Buyer
	if err := row.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create implements store.BuyerStore.Create.
// Returns store.ErrBuyerEmailExists if the email is already registered.
func (s *PostgresBuyerStore) Create(ctx context.Context, buyer *domain.Buyer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := buyer.Validate(); err != nil {
		log.Warn("buyer validation failed during create", slog.String("error", err.Error()))
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO buyers (id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, buyer.ID, buyer.Name, buyer.Email, buyer.Phone, buyer.Address, buyer.CreatedAt, buyer.UpdatedAt)
	if err != nil {
		log.Error("failed to create buyer",
			slog.String("error", err.Error()),
			slog.String("buyer_id", buyer.ID.String()))
		return mapEntityError(err, nil, store.ErrBuyerEmailExists)
	}

	log.Info("buyer created", slog.String("buyer_id", buyer.ID.String()))
	return nil
}

// GetByID implements store.BuyerStore.GetByID
func (s *PostgresBuyerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	buyer, err := scanBuyer(s.db.QueryRowContext(ctx,
		`SELECT `+buyerColumns+` FROM buyers WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrBuyerNotFound, nil)
	}
	return buyer, nil
}

// List implements store.BuyerStore.List
func (s *PostgresBuyerStore) List(ctx context.Context, page store.Page) ([]*domain.Buyer, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanBuyer,
		`SELECT `+buyerColumns+` FROM buyers ORDER BY name, id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
}

// Update implements store.BuyerStore.Update
func (s *PostgresBuyerStore) Update(ctx context.Context, buyer *domain.Buyer) error {
	if err := buyer.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE buyers SET name = $1, email = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $6
	`, buyer.Name, buyer.Email, buyer.Phone, buyer.Address, buyer.UpdatedAt, buyer.ID)
	if err != nil {
		return mapEntityError(err, nil, store.ErrBuyerEmailExists)
	}
	return CheckRowsAffected(result, store.ErrBuyerNotFound)
}

// Delete implements store.BuyerStore.Delete. Buyers with orders cannot be
// deleted; the foreign key surfaces as store.ErrConflict.
func (s *PostgresBuyerStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM buyers WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to delete buyer",
			slog.String("error", err.Error()),
			slog.String("buyer_id", id.String()))
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrBuyerNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresBuyerStore) WithTx(tx *sql.Tx) store.BuyerStore {
	return &PostgresBuyerStore{db: tx, logger: s.logger}
}
