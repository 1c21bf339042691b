package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "test_table",
		ColumnName:     "test_column",
		ConstraintName: "test_constraint",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "no rows", err: sql.ErrNoRows, target: store.ErrNotFound},
		{name: "unique violation", err: newPgError(uniqueViolationCode), target: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError(foreignKeyViolationCode), target: store.ErrInvalidEntity},
		{name: "check violation", err: newPgError(checkViolationCode), target: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError(notNullViolationCode), target: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tt.err), tt.target)
		})
	}

	assert.NoError(t, MapError(nil))
	generic := errors.New("connection reset")
	assert.Equal(t, generic, MapError(generic))
}

func TestMapEntityError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, store.ErrGoodNotFound, mapEntityError(sql.ErrNoRows, store.ErrGoodNotFound, store.ErrSKUExists))
	assert.ErrorIs(t, mapEntityError(newPgError(uniqueViolationCode), store.ErrGoodNotFound, store.ErrSKUExists), store.ErrSKUExists)
	assert.ErrorIs(t, mapEntityError(newPgError(uniqueViolationCode), nil, nil), store.ErrDuplicate)
	assert.ErrorIs(t, mapEntityError(newPgError(foreignKeyViolationCode), store.ErrGoodNotFound, nil), store.ErrInvalidEntity)
	assert.NoError(t, mapEntityError(nil, store.ErrGoodNotFound, nil))
}

func TestMapDeleteError(t *testing.T) {
	t.Parallel()

	err := mapDeleteError(newPgError(foreignKeyViolationCode))
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.NotErrorIs(t, err, store.ErrInvalidEntity)
	assert.True(t, store.IsConflictError(err))

	assert.ErrorIs(t, mapDeleteError(newPgError(checkViolationCode)), store.ErrInvalidEntity)
	assert.Equal(t, assert.AnError, mapDeleteError(assert.AnError))
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(newPgError(uniqueViolationCode)))
	assert.False(t, IsUniqueViolation(newPgError(foreignKeyViolationCode)))
	assert.True(t, IsForeignKeyViolation(newPgError(foreignKeyViolationCode)))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrBuyerNotFound))
	assert.Equal(t, store.ErrBuyerNotFound, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrBuyerNotFound))
	assert.Equal(t, store.ErrNotFound, CheckRowsAffected(sqlmock.NewResult(0, 0), nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), nil))
	assert.Error(t, CheckRowsAffected(nil, nil))
}
