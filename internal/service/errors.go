package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrForbidden indicates the actor is neither the owner of the resource
	// nor an admin. Maps to 403.
	ErrForbidden = errors.New("operation not permitted")

	// ErrPasswordMismatch is returned by Register when password and
	// confirmation differ. Maps to 400.
	ErrPasswordMismatch = fmt.Errorf("%w: password and confirmation do not match", domain.ErrValidation)

	// ErrInvalidCredentials covers both an unknown login and a wrong password. Maps to 401.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrInvalidTransition is returned for a delivery status change the
	// state machine does not allow. Maps to 409.
	ErrInvalidTransition = domain.ErrInvalidTransition

	// ErrNoPrice means the good has no price effective at the requested time. Maps to 404.
	ErrNoPrice = fmt.Errorf("%w: no current price for good", store.ErrNotFound)
)

// ServiceError carries the failed operation alongside the underlying error.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
