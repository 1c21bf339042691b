package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"github.com/phrazzld/crud-suite/internal/store"
)

// UserService provides registration, login, token rotation and user administration.
type UserService interface {
	// Register creates a customer account and returns a token pair for it.
	Register(ctx context.Context, login, password, confirmation string) (*domain.User, *auth.TokenPair, error)

	// Login checks the credentials and returns a token pair.
	// Unknown logins and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, login, password string) (*domain.User, *auth.TokenPair, error)

	// Refresh exchanges a refresh token for a new pair. The used token is revoked
	// atomically, so a token can be redeemed at most once.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)

	// Logout revokes a refresh token until it expires.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the user with the given ID.
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	ListUsers(ctx context.Context, page store.Page) ([]*domain.User, error)

	// ChangeRole sets a user's role. Admins cannot demote themselves.
	ChangeRole(ctx context.Context, actor Actor, userID uuid.UUID, role domain.Role) (*domain.User, error)

	// DeleteUser removes a user. Admins cannot delete themselves.
	DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore      store.UserStore
	db             store.Beginner
	jwtService     auth.JWTService
	hasher         auth.PasswordHasher
	revocations    auth.RevocationList
	clock          clockwork.Clock
	accessLifetime time.Duration
	logger         *slog.Logger
}

// UserServiceDeps groups the collaborators of NewUserService.
type UserServiceDeps struct {
	Users          store.UserStore
	DB             store.Beginner
	JWT            auth.JWTService
	Hasher         auth.PasswordHasher
	Revocations    auth.RevocationList
	Clock          clockwork.Clock
	AccessLifetime time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(deps UserServiceDeps, logger *slog.Logger) (UserService, error) {
	// Validate required dependencies
	if deps.Users == nil || deps.DB == nil || deps.JWT == nil || deps.Hasher == nil || deps.Revocations == nil {
		return nil, errors.New("user service: users, db, jwt, hasher and revocations are required")
	}
	if deps.AccessLifetime <= 0 {
		return nil, errors.New("user service: access lifetime must be positive")
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:      deps.Users,
		db:             deps.DB,
		jwtService:     deps.JWT,
		hasher:         deps.Hasher,
		revocations:    deps.Revocations,
		clock:          deps.Clock,
		accessLifetime: deps.AccessLifetime,
		logger:         logger.With("component", "user_service"),
	}, nil
}

// Register implements UserService.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	login, password, confirmation string,
) (*domain.User, *auth.TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if password != confirmation {
		return nil, nil, ErrPasswordMismatch
	}

	// Hash before validating the entity; NewUser only sees the hash
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-registered users are always customers
	user, err := domain.NewUser(login, hash, domain.RoleCustomer, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrLoginExists) {
			log.Debug("attempted to register an existing login", "login", login)
		} else {
			log.Error("failed to save user", "error", err, "login", login)
		}
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, pair, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, login, password string) (*domain.User, *auth.TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Unknown login and wrong password return the same error
	user, err := s.userStore.GetByLogin(ctx, login)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login attempt for unknown user")
			return nil, nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "error", err)
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrIncorrectPassword) {
			log.Debug("login attempt with wrong password", "user_id", user.ID)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to verify password: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh implements UserService. The user is reloaded so that the new
// tokens carry the current role.
func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// Claiming the jti before anything else makes each refresh token single-use,
	// even when the same token is presented concurrently.
	claimed, err := s.revocations.RevokeIfNew(ctx, claims.ID, claims.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !claimed {
		log.Warn("revoked refresh token presented", "user_id", claims.UserID, "jti", claims.ID)
		return nil, auth.ErrRevokedToken
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Debug("refresh token rotated", "user_id", user.ID)
	return pair, nil
}

// Logout implements UserService. An already expired token is accepted.
func (s *UserServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	// An expired token can no longer be used, so there is nothing to revoke
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredRefreshToken) {
			return nil
		}
		return err
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Me implements UserService.
func (s *UserServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, page store.Page) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ChangeRole implements UserService.
func (s *UserServiceImpl) ChangeRole(
	ctx context.Context,
	actor Actor,
	userID uuid.UUID,
	role domain.Role,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only admins manage roles, and an admin cannot lock themselves out
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if actor.UserID == userID && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot demote themselves", ErrForbidden)
	}

	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		u, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for role change: %w", err)
		}

		u.Role = role
		u.UpdatedAt = s.clock.Now().UTC()
		if err := txStore.Update(ctx, u); err != nil {
			return fmt.Errorf("failed to update user role: %w", err)
		}
		user = u
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to change role", "error", err, "user_id", userID)
		}
		return nil, err
	}

	log.Info("user role changed", "user_id", userID, "role", role, "changed_by", actor.UserID)
	return user, nil
}

// DeleteUser implements UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if actor.UserID == userID {
		return fmt.Errorf("%w: admins cannot delete themselves", ErrForbidden)
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", "user_id", userID, "deleted_by", actor.UserID)
	return nil
}

func (s *UserServiceImpl) issuePair(ctx context.Context, user *domain.User) (*auth.TokenPair, error) {
	access, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate access token", err)
	}
	refresh, err := s.jwtService.GenerateRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, NewServiceError("issue_tokens", "failed to generate refresh token", err)
	}
	return &auth.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    s.clock.Now().Add(s.accessLifetime).UTC(),
	}, nil
}
