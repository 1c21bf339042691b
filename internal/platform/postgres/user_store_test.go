package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	u, err := domain.NewUser("alice", "$2a$10$hash", domain.RoleCustomer, testNow)
	require.NoError(t, err)
	return u
}

func TestPostgresUserStore_Create(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "duplicate login", execErr: newPgError(uniqueViolationCode), wantErr: store.ErrLoginExists},
		{name: "other failure", execErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresUserStore(db, nil)
			user := newTestUser(t)

			exec := mock.ExpectExec("INSERT INTO users").
				WithArgs(user.ID, user.Login, user.PasswordHash, "customer", user.CreatedAt, user.UpdatedAt)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := s.Create(context.Background(), user)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.execErr != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresUserStore_CreateRejectsInvalidUser(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	user := newTestUser(t)
	user.Role = "superuser"

	err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestPostgresUserStore_GetByLogin(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE login = \\$1").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(id.String(), "alice", "hash", "admin", testNow, testNow))

	user, err := s.GetByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestPostgresUserStore_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.Equal(t, store.ErrUserNotFound, err)
}

func TestPostgresUserStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY login LIMIT \\$1 OFFSET \\$2").
		WithArgs(store.DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "login", "password_hash", "role", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "alice", "h", "customer", testNow, testNow).
			AddRow(uuid.NewString(), "bob", "h", "employee", testNow, testNow))

	users, err := s.List(context.Background(), store.Page{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].Login)
	assert.Equal(t, domain.RoleEmployee, users[1].Role)
}

func TestPostgresUserStore_UpdateAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	user := newTestUser(t)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, store.ErrUserNotFound, s.Update(context.Background(), user))

	mock.ExpectExec("UPDATE users").WillReturnError(newPgError(uniqueViolationCode))
	assert.ErrorIs(t, s.Update(context.Background(), user), store.ErrLoginExists)

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").WithArgs(user.ID).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, s.Delete(context.Background(), user.ID))

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Equal(t, store.ErrUserNotFound, s.Delete(context.Background(), user.ID))
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	user := newTestUser(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Create(ctx, user)
	})
	assert.NoError(t, err)
}

func TestNewPostgresUserStore_PanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}
