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

// PostgresTaskStore implements store.TaskStore for tracker tasks.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a PostgresTaskStore. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, project_id, title, description, status, assignee_id, due_date, created_at, updated_at`

// scanTask reads one row selected with taskColumns, in that order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t        domain.Task
		status   string
		assignee uuid.NullUUID
		due      sql.NullTime
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status,
		&assignee, &due, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.AssigneeID = fromNullUUID(assignee)
	t.DueDate = fromNullTime(due)
	return &t, nil
}

// Create implements store.TaskStore.Create.
// Returns store.ErrInvalidEntity if the project does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := task.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, title, description, status, assignee_id, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, task.ID, task.ProjectID, task.Title, task.Description, string(task.Status),
		toNullUUID(task.AssigneeID), toNullTime(task.DueDate), task.CreatedAt, task.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task references a missing project",
				slog.String("task_id", task.ID.String()),
				slog.String("project_id", task.ProjectID.String()))
		}
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrTaskNotFound, nil)
	}
	return task, nil
}

// ListByProject implements store.TaskStore.ListByProject
// An empty status lists tasks in every status.
func (s *PostgresTaskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	status domain.TaskStatus,
	page store.Page,
) ([]*domain.Task, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanTask, `
		SELECT `+taskColumns+` FROM tasks
		WHERE project_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`, projectID, string(status), page.Limit, page.Offset)
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, assignee_id = $4, due_date = $5, updated_at = $6
		WHERE id = $7
	`, task.Title, task.Description, string(task.Status), toNullUUID(task.AssigneeID),
		toNullTime(task.DueDate), task.UpdatedAt, task.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}
