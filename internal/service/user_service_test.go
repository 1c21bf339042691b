package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/config"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/mocks"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixture struct {
	svc    service.UserService
	users  *mocks.MockUserStore
	jwt    auth.JWTService
	clock  *clockwork.FakeClock
	hasher *mocks.MockPasswordHasher
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	clock := testClock()
	cfg := config.AuthConfig{
		JWTSecret:                   "service-test-secret-with-32-characters",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60,
		BCryptCost:                  4,
	}
	jwtSvc, err := auth.NewJWTService(cfg, clock)
	require.NoError(t, err)

	db, _ := mocks.NewTxDB(t)
	f := &userServiceFixture{
		users:  mocks.NewMockUserStore(),
		jwt:    jwtSvc,
		clock:  clock,
		hasher: &mocks.MockPasswordHasher{},
	}
	f.svc, err = service.NewUserService(service.UserServiceDeps{
		Users:          f.users,
		DB:             db,
		JWT:            jwtSvc,
		Hasher:         f.hasher,
		Revocations:    auth.NewMemoryRevocationList(clock),
		Clock:          clock,
		AccessLifetime: 15 * time.Minute,
	}, testLogger())
	require.NoError(t, err)
	return f
}

func TestNewUserService_RequiresDependencies(t *testing.T) {
	_, err := service.NewUserService(service.UserServiceDeps{}, nil)
	assert.Error(t, err)
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer and returns tokens", func(t *testing.T) {
		f := newUserServiceFixture(t)

		user, pair, err := f.svc.Register(ctx, "alice", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Login)
		assert.Equal(t, domain.RoleCustomer, user.Role)
		assert.Equal(t, "hashed:s3cret-pass", user.PasswordHash)
		assert.Equal(t, testNow.Add(15*time.Minute), pair.ExpiresAt)

		claims, err := f.jwt.ValidateToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleCustomer, claims.Role)

		refreshClaims, err := f.jwt.ValidateRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, auth.TokenTypeRefresh, refreshClaims.TokenType)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		f := newUserServiceFixture(t)

		_, _, err := f.svc.Register(ctx, "alice", "s3cret-pass", "other-pass")
		assert.ErrorIs(t, err, service.ErrPasswordMismatch)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.users.Users)
	})

	t.Run("password rejected by hasher", func(t *testing.T) {
		f := newUserServiceFixture(t)
		f.hasher.HashFn = func(string) (string, error) { return "", auth.ErrPasswordLength }

		_, _, err := f.svc.Register(ctx, "alice", "short", "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid login", func(t *testing.T) {
		f := newUserServiceFixture(t)

		_, _, err := f.svc.Register(ctx, "a b", "s3cret-pass", "s3cret-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidLogin)
	})

	t.Run("duplicate login", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, _, err := f.svc.Register(ctx, "alice", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		_, _, err = f.svc.Register(ctx, "alice", "another-pass", "another-pass")
		assert.ErrorIs(t, err, store.ErrLoginExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	f := newUserServiceFixture(t)
	registered, _, err := f.svc.Register(ctx, "bob", "correct-horse", "correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, pair, err := f.svc.Login(ctx, "bob", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("unknown login and wrong password look the same", func(t *testing.T) {
		_, _, errUnknown := f.svc.Login(ctx, "nobody", "correct-horse")
		_, _, errWrong := f.svc.Login(ctx, "bob", "battery-staple")

		assert.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, service.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		broken := newUserServiceFixture(t)
		broken.users.GetByLoginFn = func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("connection reset")
		}

		_, _, err := broken.svc.Login(ctx, "bob", "correct-horse")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestUserService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, first, err := f.svc.Register(ctx, "carol", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		second, err := f.svc.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		_, err = f.svc.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRevokedToken)

		_, err = f.svc.Refresh(ctx, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("concurrent redemption succeeds once", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "hank", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		const callers = 16
		var (
			wg        sync.WaitGroup
			start     = make(chan struct{})
			successes atomic.Int32
			revoked   atomic.Int32
		)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := f.svc.Refresh(ctx, pair.RefreshToken)
				switch {
				case err == nil:
					successes.Add(1)
				case errors.Is(err, auth.ErrRevokedToken):
					revoked.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), successes.Load())
		assert.Equal(t, int32(callers-1), revoked.Load())
	})

	t.Run("new tokens carry the current role", func(t *testing.T) {
		f := newUserServiceFixture(t)
		user, pair, err := f.svc.Register(ctx, "dave", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		stored := f.users.Users["dave"]
		stored.Role = domain.RoleEmployee

		next, err := f.svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		claims, err := f.jwt.ValidateToken(ctx, next.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleEmployee, claims.Role)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "erin", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		_, err = f.svc.Refresh(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "frank", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)
		delete(f.users.Users, "frank")

		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "gina", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		f.clock.Advance(2 * time.Hour)
		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrExpiredRefreshToken)
	})
}

func TestUserService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token cannot be refreshed", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "hank", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		require.NoError(t, f.svc.Logout(ctx, pair.RefreshToken))

		_, err = f.svc.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRevokedToken)
	})

	t.Run("expired token is accepted", func(t *testing.T) {
		f := newUserServiceFixture(t)
		_, pair, err := f.svc.Register(ctx, "iris", "s3cret-pass", "s3cret-pass")
		require.NoError(t, err)

		f.clock.Advance(2 * time.Hour)
		assert.NoError(t, f.svc.Logout(ctx, pair.RefreshToken))
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newUserServiceFixture(t)
		assert.ErrorIs(t, f.svc.Logout(ctx, "not-a-jwt"), auth.ErrInvalidRefreshToken)
	})
}

func TestUserService_Administration(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	admin := service.Actor{UserID: adminID, Role: domain.RoleAdmin}
	target := &domain.User{
		ID:           uuid.New(),
		Login:        "target",
		PasswordHash: "hash",
		Role:         domain.RoleCustomer,
		CreatedAt:    testNow.Add(-time.Hour),
		UpdatedAt:    testNow.Add(-time.Hour),
	}

	newService := func(t *testing.T, users store.UserStore, expectTx bool) service.UserService {
		db, sqlMock := mocks.NewTxDB(t)
		if expectTx {
			sqlMock.ExpectBegin()
			sqlMock.ExpectCommit()
		}
		svc, err := service.NewUserService(service.UserServiceDeps{
			Users:          users,
			DB:             db,
			JWT:            &mocks.MockJWTService{},
			Hasher:         &mocks.MockPasswordHasher{},
			Revocations:    auth.NewMemoryRevocationList(nil),
			Clock:          testClock(),
			AccessLifetime: time.Minute,
		}, testLogger())
		require.NoError(t, err)
		return svc
	}

	t.Run("change role", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		clone := *target
		users.On("GetByID", mock.Anything, target.ID).Return(&clone, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == target.ID && u.Role == domain.RoleEmployee && u.UpdatedAt.Equal(testNow)
		})).Return(nil)

		svc := newService(t, users, true)
		updated, err := svc.ChangeRole(ctx, admin, target.ID, domain.RoleEmployee)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, updated.Role)
		users.AssertExpectations(t)
	})

	t.Run("ListUsers passes the page through", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		page := store.Page{Limit: 5, Offset: 10}
		users.On("List", mock.Anything, page).Return([]*domain.User{target}, nil)

		svc := newService(t, users, false)
		list, err := svc.ListUsers(ctx, page)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestUserService_AdminGuards(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	admin := service.Actor{UserID: adminID, Role: domain.RoleAdmin}

	users := new(mocks.TestifyMockUserStore)
	svc, err := service.NewUserService(service.UserServiceDeps{
		Users:          users,
		DB:             &mocks.MockDB{},
		JWT:            &mocks.MockJWTService{},
		Hasher:         &mocks.MockPasswordHasher{},
		Revocations:    auth.NewMemoryRevocationList(nil),
		Clock:          testClock(),
		AccessLifetime: time.Minute,
	}, testLogger())
	require.NoError(t, err)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{
			name: "non-admin cannot change roles",
			call: func() error {
				_, err := svc.ChangeRole(ctx, service.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}, uuid.New(), domain.RoleAdmin)
				return err
			},
			wantErr: service.ErrForbidden,
		},
		{
			name: "unknown role",
			call: func() error {
				_, err := svc.ChangeRole(ctx, admin, uuid.New(), domain.Role("root"))
				return err
			},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name: "admin cannot demote itself",
			call: func() error {
				_, err := svc.ChangeRole(ctx, admin, adminID, domain.RoleCustomer)
				return err
			},
			wantErr: service.ErrForbidden,
		},
		{
			name:    "admin cannot delete itself",
			call:    func() error { return svc.DeleteUser(ctx, admin, adminID) },
			wantErr: service.ErrForbidden,
		},
		{
			name: "non-admin cannot delete users",
			call: func() error {
				return svc.DeleteUser(ctx, service.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, adminID)
			},
			wantErr: service.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.wantErr)
		})
	}

	// None of the guarded calls reach the store.
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	admin := service.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	victim := uuid.New()

	users := new(mocks.TestifyMockUserStore)
	users.On("Delete", mock.Anything, victim).Return(nil).Once()
	users.On("Delete", mock.Anything, victim).Return(store.ErrUserNotFound).Once()

	svc, err := service.NewUserService(service.UserServiceDeps{
		Users:          users,
		DB:             &mocks.MockDB{},
		JWT:            &mocks.MockJWTService{},
		Hasher:         &mocks.MockPasswordHasher{},
		Revocations:    auth.NewMemoryRevocationList(nil),
		AccessLifetime: time.Minute,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, admin, victim))
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, victim), store.ErrNotFound)
	users.AssertExpectations(t)
}
