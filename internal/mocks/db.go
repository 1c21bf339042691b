package mocks

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/crud-suite/internal/store"
)

// MockDB implements store.Beginner with a replaceable BeginTx.
type MockDB struct {
	BeginTxFn func(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var _ store.Beginner = (*MockDB)(nil)

// BeginTx implements store.Beginner.
func (m *MockDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.BeginTxFn(ctx, opts)
}

// NewTxDB returns a sqlmock database for services whose stores are mocked
// but whose transactions still begin and end on a real *sql.DB. Callers
// add ExpectBegin/ExpectCommit/ExpectRollback; unmet expectations fail the
// test on cleanup.
func NewTxDB(t testing.TB) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = db.Close()
	})
	return db, mock
}
