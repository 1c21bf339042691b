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

// PostgresEmployeeStore implements store.EmployeeStore.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmployeeStore creates a PostgresEmployeeStore. If logger is nil, the default logger is used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
	}
}

var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

const employeeColumns = `id, full_name, position, email, hired_at, created_at, updated_at`

// scanEmployee reads one row selected with employeeColumns, in that order.
func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.FullName, &e.Position, &e.Email, &e.HiredAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create implements store.EmployeeStore.Create
func (s *PostgresEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database
	if err := employee.Validate(); err != nil {
		return err
	}

	// Insert the row; constraint violations are mapped below
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, full_name, position, email, hired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, employee.ID, employee.FullName, employee.Position, employee.Email,
		employee.HiredAt, employee.CreatedAt, employee.UpdatedAt)
	if err != nil {
		log.Error("failed to create employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", employee.ID.String()))
		return mapEntityError(err, nil, store.ErrEmployeeEmailExists)
	}

	log.Info("employee created", slog.String("employee_id", employee.ID.String()))
	return nil
}

// GetByID implements store.EmployeeStore.GetByID
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := scanEmployee(s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		return nil, mapEntityError(err, store.ErrEmployeeNotFound, nil)
	}
	return employee, nil
}

// List implements store.EmployeeStore.List
func (s *PostgresEmployeeStore) List(ctx context.Context, page store.Page) ([]*domain.Employee, error) {
	page = page.Normalize()
	return queryList(ctx, s.db, scanEmployee,
		`SELECT `+employeeColumns+` FROM employees ORDER BY full_name, id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
}

// Update implements store.EmployeeStore.Update
func (s *PostgresEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	if err := employee.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE employees SET full_name = $1, position = $2, email = $3, hired_at = $4, updated_at = $5
		WHERE id = $6
	`, employee.FullName, employee.Position, employee.Email, employee.HiredAt, employee.UpdatedAt, employee.ID)
	if err != nil {
		return mapEntityError(err, nil, store.ErrEmployeeEmailExists)
	}
	return CheckRowsAffected(result, store.ErrEmployeeNotFound)
}

// Delete implements store.EmployeeStore.Delete. Deliveries and orders that
// reference the employee keep their rows with the reference cleared.
func (s *PostgresEmployeeStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return CheckRowsAffected(result, store.ErrEmployeeNotFound)
}

// WithTx returns a copy of the store that runs its queries on tx.
func (s *PostgresEmployeeStore) WithTx(tx *sql.Tx) store.EmployeeStore {
	return &PostgresEmployeeStore{db: tx, logger: s.logger}
}
