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

// PostgresGoodStore implements store.GoodStore.
type PostgresGoodStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGoodStore creates a PostgresGoodStore. If logger is nil, the default logger is used.
func NewPostgresGoodStore(db store.DBTX, logger *slog.Logger) *PostgresGoodStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGoodStore{
		db:     db,
		logger: logger.With(slog.String("component", "good_store")),
	}
}

var _ store.GoodStore = (*PostgresGoodStore)(nil)

const goodColumns = `id, sku, name, description, created_at, updated_at`

// scanGood reads one row selected with goodColumns, in that order.
func scanGood(row rowScanner) (*domain.Good, error) {
	var g domain.Good
	if err := row.Scan(&g.ID, &g.SKU, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create implements store.GoodStore.Create
func (s *PostgresGoodStore) Create(ctx context.Context, good *domain.Good) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := good.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goods (id, sku, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, good.ID, good.SKU, good.Name, good.Description, good.CreatedAt, good.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("sku already exists", slog.String("sku", good.SKU))
		} else {
			log.Error("failed to create good", slog.String("error", err.Error()))
		}
		return mapEntityError(err, nil, store.ErrSKUExists)
	}

	log.Info("good created", slog.String("good_id", good.ID.String()), slog.String("sku", good.SKU))
	return nil
}

// GetByID implements store.GoodStore.GetByID
func (s *PostgresGoodStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Good, error) {
	good, err := scanGood(s.db.QueryRowContext(ctx,
		`SELECT `+goodColumns+` FROM goods WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrGoodNotFound, nil)
	}
	return good, nil
}

// List implements store.GoodStore.List
func (s *PostgresGoodStore) List(ctx context.Context, page store.Page) ([]*domain.Good, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanGood,
		`SELECT `+goodColumns+` FROM goods ORDER BY sku LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
}

// Update implements store.GoodStore.Update
func (s *PostgresGoodStore) Update(ctx context.Context, good *domain.Good) error {
	if err := good.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goods SET sku = $1, name = $2, description = $3, updated_at = $4 WHERE id = $5
	`, good.SKU, good.Name, good.Description, good.UpdatedAt, good.ID)
	if err != nil {
		return mapEntityError(err, nil, store.ErrSKUExists)
	}
	return CheckRowsAffected(result, store.ErrGoodNotFound)
}

// Delete implements store.GoodStore.Delete. Prices cascade; goods with
// orders are protected by a foreign key and yield store.ErrConflict.
func (s *PostgresGoodStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goods WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrGoodNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresGoodStore) WithTx(tx *sql.Tx) store.GoodStore {
	return &PostgresGoodStore{db: tx, logger: s.logger}
}
