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

// PostgresPostStore implements store.PostStore.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a PostgresPostStore. If logger is nil, the default logger is used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostgresPostStore)(nil)

const postColumns = `id, author_id, title, body, created_at, updated_at`

// scanPost reads one row selected with postColumns, in that order.
func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, post.ID, post.AuthorID, post.Title, post.Body, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()),
			slog.String("author_id", post.AuthorID.String()))
		return MapError(err)
	}

	log.Info("post created", slog.String("post_id", post.ID.String()))
	return nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := scanPost(s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrPostNotFound, nil)
	}
	return post, nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context, page store.Page) ([]*domain.Post, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanPost,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE posts SET title = $1, body = $2, updated_at = $3 WHERE id = $4
	`, post.Title, post.Body, post.UpdatedAt, post.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// Delete implements store.PostStore.Delete
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}
