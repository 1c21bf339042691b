package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or violates
	// a referential or check constraint. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when an entity cannot be deleted because other
	// rows still reference it.
	ErrConflict = errors.New("entity is still referenced")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific "not found" errors.
var (
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrPostNotFound         = fmt.Errorf("%w: post", ErrNotFound)
	ErrProjectNotFound      = fmt.Errorf("%w: project", ErrNotFound)
	ErrTaskNotFound         = fmt.Errorf("%w: task", ErrNotFound)
	ErrBuyerNotFound        = fmt.Errorf("%w: buyer", ErrNotFound)
	ErrEmployeeNotFound     = fmt.Errorf("%w: employee", ErrNotFound)
	ErrGoodNotFound         = fmt.Errorf("%w: good", ErrNotFound)
	ErrPriceNotFound        = fmt.Errorf("%w: price", ErrNotFound)
	ErrDeliveryNotFound     = fmt.Errorf("%w: delivery", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("%w: notification", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("%w: order", ErrNotFound)
)

// Entity-specific "duplicate" errors.
var (
	ErrLoginExists         = fmt.Errorf("%w: login", ErrDuplicate)
	ErrBuyerEmailExists    = fmt.Errorf("%w: buyer email", ErrDuplicate)
	ErrEmployeeEmailExists = fmt.Errorf("%w: employee email", ErrDuplicate)
	ErrSKUExists           = fmt.Errorf("%w: sku", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if the error reports a still-referenced entity.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "buyer", "order")
	Operation string // The operation that failed (e.g., "create", "update")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation and wrapped error.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
