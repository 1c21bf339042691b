package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// ProjectStore persists tracker projects.
type ProjectStore interface {
	Create(ctx context.Context, project *domain.Project) error
	// GetByID returns ErrProjectNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	// ListByOwner returns the owner's projects ordered by name.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	// Delete removes the project and, through the foreign key, its tasks.
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) ProjectStore
}

// TaskStore persists tracker tasks.
type TaskStore interface {
	// Create returns ErrInvalidEntity if the project does not exist.
	Create(ctx context.Context, task *domain.Task) error
	// GetByID returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// ListByProject returns tasks of a project, oldest first. An empty status matches every status.
	ListByProject(ctx context.Context, projectID uuid.UUID, status domain.TaskStatus, page Page) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sql.Tx) TaskStore
}
