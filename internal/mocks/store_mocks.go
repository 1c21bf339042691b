package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockPostStore is a testify mock of store.PostStore.
type TestifyMockPostStore struct {
	mock.Mock
}

var _ store.PostStore = (*TestifyMockPostStore)(nil)

// Create implements the store.PostStore.Create method
func (m *TestifyMockPostStore) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

// GetByID implements the store.PostStore.GetByID method
func (m *TestifyMockPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.PostStore.List method
func (m *TestifyMockPostStore) List(ctx context.Context, page store.Page) ([]*domain.Post, error) {
	args := m.Called(ctx, page)
	if v, ok := args.Get(0).([]*domain.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.PostStore.Update method
func (m *TestifyMockPostStore) Update(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

// Delete implements the store.PostStore.Delete method
func (m *TestifyMockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockPostStore) WithTx(*sql.Tx) store.PostStore {
	return m
}

// TestifyMockProjectStore is a testify mock of store.ProjectStore.
type TestifyMockProjectStore struct {
	mock.Mock
}

var _ store.ProjectStore = (*TestifyMockProjectStore)(nil)

// Create implements the store.ProjectStore.Create method
func (m *TestifyMockProjectStore) Create(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

// GetByID implements the store.ProjectStore.GetByID method
func (m *TestifyMockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Project); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByOwner implements the store.ProjectStore.ListByOwner method
func (m *TestifyMockProjectStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page store.Page) ([]*domain.Project, error) {
	args := m.Called(ctx, ownerID, page)
	if v, ok := args.Get(0).([]*domain.Project); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.ProjectStore.Update method
func (m *TestifyMockProjectStore) Update(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

// Delete implements the store.ProjectStore.Delete method
func (m *TestifyMockProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockProjectStore) WithTx(*sql.Tx) store.ProjectStore {
	return m
}

// TestifyMockTaskStore is a testify mock of store.TaskStore.
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create implements the store.TaskStore.Create method
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// GetByID implements the store.TaskStore.GetByID method
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Task); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByProject implements the store.TaskStore.ListByProject method
func (m *TestifyMockTaskStore) ListByProject(ctx context.Context, projectID uuid.UUID, status domain.TaskStatus, page store.Page) ([]*domain.Task, error) {
	args := m.Called(ctx, projectID, status, page)
	if v, ok := args.Get(0).([]*domain.Task); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.TaskStore.Update method
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

// Delete implements the store.TaskStore.Delete method
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	return m
}

// TestifyMockBuyerStore is a testify mock of store.BuyerStore.
type TestifyMockBuyerStore struct {
	mock.Mock
}

var _ store.BuyerStore = (*TestifyMockBuyerStore)(nil)

// Create implements the store.BuyerStore.Create method
func (m *TestifyMockBuyerStore) Create(ctx context.Context, buyer *domain.Buyer) error {
	return m.Called(ctx, buyer).Error(0)
}

// GetByID implements the store.BuyerStore.GetByID method
func (m *TestifyMockBuyerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Buyer); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.BuyerStore.List method
func (m *TestifyMockBuyerStore) List(ctx context.Context, page store.Page) ([]*domain.Buyer, error) {
	args := m.Called(ctx, page)
	if v, ok := args.Get(0).([]*domain.Buyer); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.BuyerStore.Update method
func (m *TestifyMockBuyerStore) Update(ctx context.Context, buyer *domain.Buyer) error {
	return m.Called(ctx, buyer).Error(0)
}

// Delete implements the store.BuyerStore.Delete method
func (m *TestifyMockBuyerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockBuyerStore) WithTx(*sql.Tx) store.BuyerStore {
	return m
}

// TestifyMockEmployeeStore is a testify mock of store.EmployeeStore.
type TestifyMockEmployeeStore struct {
	mock.Mock
}

var _ store.EmployeeStore = (*TestifyMockEmployeeStore)(nil)

// Create implements the store.EmployeeStore.Create method
func (m *TestifyMockEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

// GetByID implements the store.EmployeeStore.GetByID method
func (m *TestifyMockEmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.EmployeeStore.List method
func (m *TestifyMockEmployeeStore) List(ctx context.Context, page store.Page) ([]*domain.Employee, error) {
	args := m.Called(ctx, page)
	if v, ok := args.Get(0).([]*domain.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.EmployeeStore.Update method
func (m *TestifyMockEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

// Delete implements the store.EmployeeStore.Delete method
func (m *TestifyMockEmployeeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockEmployeeStore) WithTx(*sql.Tx) store.EmployeeStore {
	return m
}

// TestifyMockGoodStore is a testify mock of store.GoodStore.
type TestifyMockGoodStore struct {
	mock.Mock
}

var _ store.GoodStore = (*TestifyMockGoodStore)(nil)

// Create implements the store.GoodStore.Create method
func (m *TestifyMockGoodStore) Create(ctx context.Context, good *domain.Good) error {
	return m.Called(ctx, good).Error(0)
}

// GetByID implements the store.GoodStore.GetByID method
func (m *TestifyMockGoodStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Good, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Good); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.GoodStore.List method
func (m *TestifyMockGoodStore) List(ctx context.Context, page store.Page) ([]*domain.Good, error) {
	args := m.Called(ctx, page)
	if v, ok := args.Get(0).([]*domain.Good); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.GoodStore.Update method
func (m *TestifyMockGoodStore) Update(ctx context.Context, good *domain.Good) error {
	return m.Called(ctx, good).Error(0)
}

// Delete implements the store.GoodStore.Delete method
func (m *TestifyMockGoodStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockGoodStore) WithTx(*sql.Tx) store.GoodStore {
	return m
}

// TestifyMockPriceStore is a testify mock of store.PriceStore.
type TestifyMockPriceStore struct {
	mock.Mock
}

var _ store.PriceStore = (*TestifyMockPriceStore)(nil)

// Create implements the store.PriceStore.Create method
func (m *TestifyMockPriceStore) Create(ctx context.Context, price *domain.Price) error {
	return m.Called(ctx, price).Error(0)
}

// Current implements the store.PriceStore.Current method
func (m *TestifyMockPriceStore) Current(ctx context.Context, goodID uuid.UUID, at time.Time) (*domain.Price, error) {
	args := m.Called(ctx, goodID, at)
	if v, ok := args.Get(0).(*domain.Price); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// History implements the store.PriceStore.History method
func (m *TestifyMockPriceStore) History(ctx context.Context, goodID uuid.UUID, page store.Page) ([]*domain.Price, error) {
	args := m.Called(ctx, goodID, page)
	if v, ok := args.Get(0).([]*domain.Price); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete implements the store.PriceStore.Delete method
func (m *TestifyMockPriceStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockPriceStore) WithTx(*sql.Tx) store.PriceStore {
	return m
}

// TestifyMockDeliveryStore is a testify mock of store.DeliveryStore.
type TestifyMockDeliveryStore struct {
	mock.Mock
}

var _ store.DeliveryStore = (*TestifyMockDeliveryStore)(nil)

// Create implements the store.DeliveryStore.Create method
func (m *TestifyMockDeliveryStore) Create(ctx context.Context, delivery *domain.Delivery) error {
	return m.Called(ctx, delivery).Error(0)
}

// GetByID implements the store.DeliveryStore.GetByID method
func (m *TestifyMockDeliveryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Delivery); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDForUpdate implements the store.DeliveryStore.GetByIDForUpdate method
func (m *TestifyMockDeliveryStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Delivery); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.DeliveryStore.List method
func (m *TestifyMockDeliveryStore) List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Delivery, error) {
	args := m.Called(ctx, buyerID, page)
	if v, ok := args.Get(0).([]*domain.Delivery); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update implements the store.DeliveryStore.Update method
func (m *TestifyMockDeliveryStore) Update(ctx context.Context, delivery *domain.Delivery) error {
	return m.Called(ctx, delivery).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockDeliveryStore) WithTx(*sql.Tx) store.DeliveryStore {
	return m
}

// TestifyMockNotificationStore is a testify mock of store.NotificationStore.
type TestifyMockNotificationStore struct {
	mock.Mock
}

var _ store.NotificationStore = (*TestifyMockNotificationStore)(nil)

// Create implements the store.NotificationStore.Create method
func (m *TestifyMockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

// GetByID implements the store.NotificationStore.GetByID method
func (m *TestifyMockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Notification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByBuyer implements the store.NotificationStore.ListByBuyer method
func (m *TestifyMockNotificationStore) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page store.Page) ([]*domain.Notification, error) {
	args := m.Called(ctx, buyerID, page)
	if v, ok := args.Get(0).([]*domain.Notification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead implements the store.NotificationStore.MarkRead method
func (m *TestifyMockNotificationStore) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// Delete implements the store.NotificationStore.Delete method
func (m *TestifyMockNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// DeleteReadBefore implements the store.NotificationStore.DeleteReadBefore method
func (m *TestifyMockNotificationStore) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx returns the mock itself.
func (m *TestifyMockNotificationStore) WithTx(*sql.Tx) store.NotificationStore {
	return m
}

// TestifyMockOrderStore is a testify mock of store.OrderStore.
type TestifyMockOrderStore struct {
	mock.Mock
}

var _ store.OrderStore = (*TestifyMockOrderStore)(nil)

// Create implements the store.OrderStore.Create method
func (m *TestifyMockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

// GetByID implements the store.OrderStore.GetByID method
func (m *TestifyMockOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Order); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// List implements the store.OrderStore.List method
func (m *TestifyMockOrderStore) List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Order, error) {
	args := m.Called(ctx, buyerID, page)
	if v, ok := args.Get(0).([]*domain.Order); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete implements the store.OrderStore.Delete method
func (m *TestifyMockOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *TestifyMockOrderStore) WithTx(*sql.Tx) store.OrderStore {
	return m
}
