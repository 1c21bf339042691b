package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. Returns ErrLoginExists if the login is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByLogin retrieves a user by login. Returns ErrUserNotFound if absent.
	GetByLogin(ctx context.Context, login string) (*domain.User, error)

	// List returns users ordered by login.
	List(ctx context.Context, page Page) ([]*domain.User, error)

	// Update overwrites login, password hash and role of an existing user.
	// Returns ErrUserNotFound or ErrLoginExists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore that runs its statements on tx.
	WithTx(tx *sql.Tx) UserStore
}
