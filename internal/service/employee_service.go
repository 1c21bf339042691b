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

// EmployeeInput holds the writable fields of an employee.
// A zero HiredAt means today on create and unchanged on update.
type EmployeeInput struct {
	FullName string
	Position string
	Email    string
	HiredAt  time.Time
}

// EmployeeService manages shop staff.
type EmployeeService interface {
	Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, page store.Page) ([]*domain.Employee, error)
	Update(ctx context.Context, id uuid.UUID, in EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	employees store.EmployeeStore
	db        store.Beginner
	clock     clockwork.Clock
	logger    *slog.Logger
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(
	employees store.EmployeeStore,
	db store.Beginner,
	clock clockwork.Clock,
	logger *slog.Logger,
) EmployeeService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &employeeService{
		employees: employees,
		db:        db,
		clock:     clock,
		logger:    logger.With("component", "employee_service"),
	}
}

// Create implements EmployeeService.Create
func (s *employeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	employee, err := domain.NewEmployee(in.FullName, in.Position, in.Email, in.HiredAt, s.clock.Now())
	if err != nil {
		return nil, err
	}
	// A taken email surfaces as store.ErrEmployeeEmailExists
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("employee created", "employee_id", employee.ID)
	return employee, nil
}

// Get implements EmployeeService.Get
func (s *employeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve employee: %w", err)
	}
	return employee, nil
}

// List implements EmployeeService.List
func (s *employeeService) List(ctx context.Context, page store.Page) ([]*domain.Employee, error) {
	employees, err := s.employees.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Update implements EmployeeService.Update
func (s *employeeService) Update(ctx context.Context, id uuid.UUID, in EmployeeInput) (*domain.Employee, error) {
	var employee *domain.Employee
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.employees.WithTx(tx)

		e, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve employee for update: %w", err)
		}
		if err := e.Update(in.FullName, in.Position, in.Email, in.HiredAt, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		employee = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// Delete implements EmployeeService.Delete
// Unknown employees yield store.ErrEmployeeNotFound.
func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("employee deleted", "employee_id", id)
	return nil
}
