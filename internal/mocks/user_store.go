package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/store"
)

// MockUserStore is an in-memory store.UserStore keyed by login.
type MockUserStore struct {
	// Function fields override the in-memory behaviour when set.
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByLoginFn func(ctx context.Context, login string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	mu    sync.Mutex
	Users map[string]*domain.User
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Users[user.Login]; exists {
		return store.ErrLoginExists
	}
	clone := *user
	m.Users[user.Login] = &clone
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.Users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByLogin implements the UserStore interface
func (m *MockUserStore) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	if m.GetByLoginFn != nil {
		return m.GetByLoginFn(ctx, login)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.Users[login]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// List implements the UserStore interface, ordered by login.
func (m *MockUserStore) List(ctx context.Context, page store.Page) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	page = page.Normalize()
	users := make([]*domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Login < users[j].Login })

	if page.Offset >= len(users) {
		return []*domain.User{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(users) {
		end = len(users)
	}
	return users[page.Offset:end], nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for login, existing := range m.Users {
		if existing.ID == user.ID {
			if login != user.Login {
				if _, taken := m.Users[user.Login]; taken {
					return store.ErrLoginExists
				}
				delete(m.Users, login)
			}
			clone := *user
			m.Users[user.Login] = &clone
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for login, user := range m.Users {
		if user.ID == id {
			delete(m.Users, login)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx returns the same store.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
