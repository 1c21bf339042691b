// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles query execution, mapping of PostgreSQL error codes onto store
// errors, and the embedded goose migrations that create the schema.
package postgres
