package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// TaskInput holds the writable fields of a task. An empty Status means todo.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

// TaskService manages tasks inside projects. Access follows the owning project.
type TaskService interface {
	Create(ctx context.Context, actor Actor, projectID uuid.UUID, in TaskInput) (*domain.Task, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Task, error)
	// ListByProject returns the project's tasks, optionally filtered by status.
	ListByProject(
		ctx context.Context,
		actor Actor,
		projectID uuid.UUID,
		status domain.TaskStatus,
		page store.Page,
	) ([]*domain.Task, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type taskService struct {
	tasks    store.TaskStore
	projects store.ProjectStore
	db       store.Beginner
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	projects store.ProjectStore,
	db store.Beginner,
	clock clockwork.Clock,
	logger *slog.Logger,
) TaskService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskService{
		tasks:    tasks,
		projects: projects,
		db:       db,
		clock:    clock,
		logger:   logger.With("component", "task_service"),
	}
}

// Create implements TaskService.Create
// The actor must own the project or be an admin.
func (s *taskService) Create(ctx context.Context, actor Actor, projectID uuid.UUID, in TaskInput) (*domain.Task, error) {
	// Only the project owner or an admin may add tasks
	if _, err := loadOwnedProject(ctx, s.projects, actor, projectID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task, err := domain.NewTask(projectID, in.Title, in.Description, now)
	if err != nil {
		return nil, err
	}
	if err := task.Update(in.Title, in.Description, statusOrTodo(in.Status), in.AssigneeID, in.DueDate, now); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		"task_id", task.ID,
		"project_id", projectID)
	return task, nil
}

// Get implements TaskService.Get
func (s *taskService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	// Access to a task follows access to its project
	if _, err := loadOwnedProject(ctx, s.projects, actor, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByProject implements TaskService.ListByProject
func (s *taskService) ListByProject(
	ctx context.Context,
	actor Actor,
	projectID uuid.UUID,
	status domain.TaskStatus,
	page store.Page,
) ([]*domain.Task, error) {
	// Reject unknown filters before touching the store
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := loadOwnedProject(ctx, s.projects, actor, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID, status, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update implements TaskService.Update
func (s *taskService) Update(ctx context.Context, actor Actor, id uuid.UUID, in TaskInput) (*domain.Task, error) {
	var task *domain.Task
	// Read, authorize and write in one transaction
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve task for update: %w", err)
		}
		if _, err := loadOwnedProject(ctx, s.projects.WithTx(tx), actor, t.ProjectID); err != nil {
			return err
		}
		// Apply and validate the changes on the domain object
		if err := t.Update(in.Title, in.Description, statusOrTodo(in.Status), in.AssigneeID, in.DueDate, s.clock.Now()); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, t); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task updated", "task_id", id, "status", task.Status)
	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve task for deletion: %w", err)
		}
		if _, err := loadOwnedProject(ctx, s.projects.WithTx(tx), actor, t.ProjectID); err != nil {
			return err
		}
		if err := txTasks.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// statusOrTodo defaults an omitted status to todo.
func statusOrTodo(s domain.TaskStatus) domain.TaskStatus {
	if s == "" {
		return domain.TaskStatusTodo
	}
	return s
}
