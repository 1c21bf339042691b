// Package domain defines the entities managed by the CRUD services and the
// validation rules they must satisfy before being persisted.
//
// Entities are plain structs; constructors assign identifiers and timestamps
// and run Validate. Every validation failure wraps ErrValidation so callers can
// classify it with errors.Is without knowing the specific field.
package domain
