package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// ProjectService manages tracker projects. Every operation on an existing
// project requires the owner or an admin.
type ProjectService interface {
	Create(ctx context.Context, actor Actor, name, description string) (*domain.Project, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Project, error)
	// ListOwn returns the actor's projects.
	ListOwn(ctx context.Context, actor Actor, page store.Page) ([]*domain.Project, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, name, description string) (*domain.Project, error)
	// Delete removes the project and, through the foreign key, its tasks.
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type projectService struct {
	projects store.ProjectStore
	db       store.Beginner
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projects store.ProjectStore,
	db store.Beginner,
	clock clockwork.Clock,
	logger *slog.Logger,
) ProjectService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &projectService{
		projects: projects,
		db:       db,
		clock:    clock,
		logger:   logger.With("component", "project_service"),
	}
}

// Create implements ProjectService.Create
func (s *projectService) Create(ctx context.Context, actor Actor, name, description string) (*domain.Project, error) {
	project, err := domain.NewProject(actor.UserID, name, description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("project created",
		"project_id", project.ID,
		"owner_id", project.OwnerID)
	return project, nil
}

// Get implements ProjectService.Get
// Non-owners get ErrForbidden unless they are admins.
func (s *projectService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Project, error) {
	return loadOwnedProject(ctx, s.projects, actor, id)
}

// ListOwn implements ProjectService.ListOwn
// It lists the actor's own projects.
func (s *projectService) ListOwn(ctx context.Context, actor Actor, page store.Page) ([]*domain.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, actor.UserID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Update implements ProjectService.Update
func (s *projectService) Update(
	ctx context.Context,
	actor Actor,
	id uuid.UUID,
	name, description string,
) (*domain.Project, error) {
	var project *domain.Project
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.projects.WithTx(tx)

		p, err := loadOwnedProject(ctx, txStore, actor, id)
		if err != nil {
			return err
		}
		if err := p.Rename(name, description, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Delete implements ProjectService.Delete
func (s *projectService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.projects.WithTx(tx)

		if _, err := loadOwnedProject(ctx, txStore, actor, id); err != nil {
			return err
		}
		if err := txStore.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("project deleted", "project_id", id, "deleted_by", actor.UserID)
	return nil
}

// loadOwnedProject fetches a project and checks that actor may manage it.
func loadOwnedProject(
	ctx context.Context,
	projects store.ProjectStore,
	actor Actor,
	id uuid.UUID,
) (*domain.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %w", err)
	}
	if !actor.CanManage(p.OwnerID) {
		return nil, ErrForbidden
	}
	return p, nil
}
