package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// PostStore persists news feed posts.
type PostStore interface {
	Create(ctx context.Context, post *domain.Post) error
	// GetByID returns ErrPostNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	// List returns posts newest first.
	List(ctx context.Context, page Page) ([]*domain.Post, error)
	// Update overwrites title, body and updated_at. Returns ErrPostNotFound if absent.
	Update(ctx context.Context, post *domain.Post) error
	// Delete returns ErrPostNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) PostStore
}
