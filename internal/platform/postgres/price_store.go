package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// PostgresPriceStore implements store.PriceStore.
type PostgresPriceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPriceStore creates a PostgresPriceStore. If logger is nil, the default logger is used.
func NewPostgresPriceStore(db store.DBTX, logger *slog.Logger) *PostgresPriceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPriceStore{
		db:     db,
		logger: logger.With(slog.String("component", "price_store")),
	}
}

var _ store.PriceStore = (*PostgresPriceStore)(nil)

const priceColumns = `id, good_id, amount, currency, valid_from, created_at`

// scanPrice reads one row selected with priceColumns, in that order.
func scanPrice(row rowScanner) (*domain.Price, error) {
	var p domain.Price
	if err := row.Scan(&p.ID, &p.GoodID, &p.Amount, &p.Currency, &p.ValidFrom, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements store.PriceStore.Create.
// Returns store.ErrInvalidEntity if the good does not exist.
func (s *PostgresPriceStore) Create(ctx context.Context, price *domain.Price) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := price.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prices (id, good_id, amount, currency, valid_from, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, price.ID, price.GoodID, price.Amount, price.Currency, price.ValidFrom, price.CreatedAt)
	if err != nil {
		log.Error("failed to create price",
			slog.String("error", err.Error()),
			slog.String("good_id", price.GoodID.String()))
		return MapError(err)
	}

	log.Info("price created",
		slog.String("price_id", price.ID.String()),
		slog.String("good_id", price.GoodID.String()),
		slog.Int64("amount", price.Amount),
		slog.Time("valid_from", price.ValidFrom))
	return nil
}

// Current implements store.PriceStore.Current
// It returns the price with the latest valid_from not after at.
func (s *PostgresPriceStore) Current(ctx context.Context, goodID uuid.UUID, at time.Time) (*domain.Price, error) {
	price, err := scanPrice(s.db.QueryRowContext(ctx, `
		SELECT `+priceColumns+` FROM prices
		WHERE good_id = $1 AND valid_from <= $2
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1
	`, goodID, at.UTC()))
	if err != nil {
		return nil, mapEntityError(err, store.ErrPriceNotFound, nil)
	}
	return price, nil
}

// History implements store.PriceStore.History
// Prices are ordered by valid_from, newest first.
func (s *PostgresPriceStore) History(ctx context.Context, goodID uuid.UUID, page store.Page) ([]*domain.Price, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanPrice, `
		SELECT `+priceColumns+` FROM prices
		WHERE good_id = $1
		ORDER BY valid_from DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`, goodID, page.Limit, page.Offset)
}

// Delete implements store.PriceStore.Delete
func (s *PostgresPriceStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrPriceNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresPriceStore) WithTx(tx *sql.Tx) store.PriceStore {
	return &PostgresPriceStore{db: tx, logger: s.logger}
}
