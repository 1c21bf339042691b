package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"github.com/phrazzld/crud-suite/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a testify mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the service.UserService.Register method
func (m *MockUserService) Register(ctx context.Context, login, password, confirmation string) (*domain.User, *auth.TokenPair, error) {
	args := m.Called(ctx, login, password, confirmation)
	r0, _ := args.Get(0).(*domain.User)
	r1, _ := args.Get(1).(*auth.TokenPair)
	return r0, r1, args.Error(2)
}

// Login implements the service.UserService.Login method
func (m *MockUserService) Login(ctx context.Context, login, password string) (*domain.User, *auth.TokenPair, error) {
	args := m.Called(ctx, login, password)
	r0, _ := args.Get(0).(*domain.User)
	r1, _ := args.Get(1).(*auth.TokenPair)
	return r0, r1, args.Error(2)
}

// Refresh implements the service.UserService.Refresh method
func (m *MockUserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	r0, _ := args.Get(0).(*auth.TokenPair)
	return r0, args.Error(1)
}

// Logout implements the service.UserService.Logout method
func (m *MockUserService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

// Me implements the service.UserService.Me method
func (m *MockUserService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	r0, _ := args.Get(0).(*domain.User)
	return r0, args.Error(1)
}

// ListUsers implements the service.UserService.ListUsers method
func (m *MockUserService) ListUsers(ctx context.Context, page store.Page) ([]*domain.User, error) {
	args := m.Called(ctx, page)
	r0, _ := args.Get(0).([]*domain.User)
	return r0, args.Error(1)
}

// ChangeRole implements the service.UserService.ChangeRole method
func (m *MockUserService) ChangeRole(ctx context.Context, actor service.Actor, userID uuid.UUID, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, role)
	r0, _ := args.Get(0).(*domain.User)
	return r0, args.Error(1)
}

// DeleteUser implements the service.UserService.DeleteUser method
func (m *MockUserService) DeleteUser(ctx context.Context, actor service.Actor, userID uuid.UUID) error {
	return m.Called(ctx, actor, userID).Error(0)
}

// MockNewsService is a testify mock of service.NewsService.
type MockNewsService struct {
	mock.Mock
}

var _ service.NewsService = (*MockNewsService)(nil)

// Create implements the service.NewsService.Create method
func (m *MockNewsService) Create(ctx context.Context, actor service.Actor, title, body string) (*domain.Post, error) {
	args := m.Called(ctx, actor, title, body)
	r0, _ := args.Get(0).(*domain.Post)
	return r0, args.Error(1)
}

// Get implements the service.NewsService.Get method
func (m *MockNewsService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Post)
	return r0, args.Error(1)
}

// List implements the service.NewsService.List method
func (m *MockNewsService) List(ctx context.Context, page store.Page) ([]*domain.Post, error) {
	args := m.Called(ctx, page)
	r0, _ := args.Get(0).([]*domain.Post)
	return r0, args.Error(1)
}

// Update implements the service.NewsService.Update method
func (m *MockNewsService) Update(ctx context.Context, actor service.Actor, id uuid.UUID, title, body string) (*domain.Post, error) {
	args := m.Called(ctx, actor, id, title, body)
	r0, _ := args.Get(0).(*domain.Post)
	return r0, args.Error(1)
}

// Delete implements the service.NewsService.Delete method
func (m *MockNewsService) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockProjectService is a testify mock of service.ProjectService.
type MockProjectService struct {
	mock.Mock
}

var _ service.ProjectService = (*MockProjectService)(nil)

// Create implements the service.ProjectService.Create method
func (m *MockProjectService) Create(ctx context.Context, actor service.Actor, name, description string) (*domain.Project, error) {
	args := m.Called(ctx, actor, name, description)
	r0, _ := args.Get(0).(*domain.Project)
	return r0, args.Error(1)
}

// Get implements the service.ProjectService.Get method
func (m *MockProjectService) Get(ctx context.Context, actor service.Actor, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, actor, id)
	r0, _ := args.Get(0).(*domain.Project)
	return r0, args.Error(1)
}

// ListOwn implements the service.ProjectService.ListOwn method
func (m *MockProjectService) ListOwn(ctx context.Context, actor service.Actor, page store.Page) ([]*domain.Project, error) {
	args := m.Called(ctx, actor, page)
	r0, _ := args.Get(0).([]*domain.Project)
	return r0, args.Error(1)
}

// Update implements the service.ProjectService.Update method
func (m *MockProjectService) Update(ctx context.Context, actor service.Actor, id uuid.UUID, name, description string) (*domain.Project, error) {
	args := m.Called(ctx, actor, id, name, description)
	r0, _ := args.Get(0).(*domain.Project)
	return r0, args.Error(1)
}

// Delete implements the service.ProjectService.Delete method
func (m *MockProjectService) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

// Create implements the service.TaskService.Create method
func (m *MockTaskService) Create(ctx context.Context, actor service.Actor, projectID uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, actor, projectID, in)
	r0, _ := args.Get(0).(*domain.Task)
	return r0, args.Error(1)
}

// Get implements the service.TaskService.Get method
func (m *MockTaskService) Get(ctx context.Context, actor service.Actor, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, actor, id)
	r0, _ := args.Get(0).(*domain.Task)
	return r0, args.Error(1)
}

// ListByProject implements the service.TaskService.ListByProject method
func (m *MockTaskService) ListByProject(ctx context.Context, actor service.Actor, projectID uuid.UUID, status domain.TaskStatus, page store.Page) ([]*domain.Task, error) {
	args := m.Called(ctx, actor, projectID, status, page)
	r0, _ := args.Get(0).([]*domain.Task)
	return r0, args.Error(1)
}

// Update implements the service.TaskService.Update method
func (m *MockTaskService) Update(ctx context.Context, actor service.Actor, id uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, actor, id, in)
	r0, _ := args.Get(0).(*domain.Task)
	return r0, args.Error(1)
}

// Delete implements the service.TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockBuyerService is a testify mock of service.BuyerService.
type MockBuyerService struct {
	mock.Mock
}

var _ service.BuyerService = (*MockBuyerService)(nil)

// Create implements the service.BuyerService.Create method
func (m *MockBuyerService) Create(ctx context.Context, in service.BuyerInput) (*domain.Buyer, error) {
	args := m.Called(ctx, in)
	r0, _ := args.Get(0).(*domain.Buyer)
	return r0, args.Error(1)
}

// Get implements the service.BuyerService.Get method
func (m *MockBuyerService) Get(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Buyer)
	return r0, args.Error(1)
}

// List implements the service.BuyerService.List method
func (m *MockBuyerService) List(ctx context.Context, page store.Page) ([]*domain.Buyer, error) {
	args := m.Called(ctx, page)
	r0, _ := args.Get(0).([]*domain.Buyer)
	return r0, args.Error(1)
}

// Update implements the service.BuyerService.Update method
func (m *MockBuyerService) Update(ctx context.Context, id uuid.UUID, in service.BuyerInput) (*domain.Buyer, error) {
	args := m.Called(ctx, id, in)
	r0, _ := args.Get(0).(*domain.Buyer)
	return r0, args.Error(1)
}

// Delete implements the service.BuyerService.Delete method
func (m *MockBuyerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockEmployeeService is a testify mock of service.EmployeeService.
type MockEmployeeService struct {
	mock.Mock
}

var _ service.EmployeeService = (*MockEmployeeService)(nil)

// Create implements the service.EmployeeService.Create method
func (m *MockEmployeeService) Create(ctx context.Context, in service.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, in)
	r0, _ := args.Get(0).(*domain.Employee)
	return r0, args.Error(1)
}

// Get implements the service.EmployeeService.Get method
func (m *MockEmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Employee)
	return r0, args.Error(1)
}

// List implements the service.EmployeeService.List method
func (m *MockEmployeeService) List(ctx context.Context, page store.Page) ([]*domain.Employee, error) {
	args := m.Called(ctx, page)
	r0, _ := args.Get(0).([]*domain.Employee)
	return r0, args.Error(1)
}

// Update implements the service.EmployeeService.Update method
func (m *MockEmployeeService) Update(ctx context.Context, id uuid.UUID, in service.EmployeeInput) (*domain.Employee, error) {
	args := m.Called(ctx, id, in)
	r0, _ := args.Get(0).(*domain.Employee)
	return r0, args.Error(1)
}

// Delete implements the service.EmployeeService.Delete method
func (m *MockEmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockGoodService is a testify mock of service.GoodService.
type MockGoodService struct {
	mock.Mock
}

var _ service.GoodService = (*MockGoodService)(nil)

// Create implements the service.GoodService.Create method
func (m *MockGoodService) Create(ctx context.Context, in service.GoodInput) (*domain.Good, error) {
	args := m.Called(ctx, in)
	r0, _ := args.Get(0).(*domain.Good)
	return r0, args.Error(1)
}

// Get implements the service.GoodService.Get method
func (m *MockGoodService) Get(ctx context.Context, id uuid.UUID) (*domain.Good, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Good)
	return r0, args.Error(1)
}

// List implements the service.GoodService.List method
func (m *MockGoodService) List(ctx context.Context, page store.Page) ([]*domain.Good, error) {
	args := m.Called(ctx, page)
	r0, _ := args.Get(0).([]*domain.Good)
	return r0, args.Error(1)
}

// Update implements the service.GoodService.Update method
func (m *MockGoodService) Update(ctx context.Context, id uuid.UUID, in service.GoodInput) (*domain.Good, error) {
	args := m.Called(ctx, id, in)
	r0, _ := args.Get(0).(*domain.Good)
	return r0, args.Error(1)
}

// Delete implements the service.GoodService.Delete method
func (m *MockGoodService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPriceService is a testify mock of service.PriceService.
type MockPriceService struct {
	mock.Mock
}

var _ service.PriceService = (*MockPriceService)(nil)

// SetPrice implements the service.PriceService.SetPrice method
func (m *MockPriceService) SetPrice(ctx context.Context, goodID uuid.UUID, amount int64, currency string, validFrom time.Time) (*domain.Price, error) {
	args := m.Called(ctx, goodID, amount, currency, validFrom)
	r0, _ := args.Get(0).(*domain.Price)
	return r0, args.Error(1)
}

// CurrentPrice implements the service.PriceService.CurrentPrice method
func (m *MockPriceService) CurrentPrice(ctx context.Context, goodID uuid.UUID) (*domain.Price, error) {
	args := m.Called(ctx, goodID)
	r0, _ := args.Get(0).(*domain.Price)
	return r0, args.Error(1)
}

// History implements the service.PriceService.History method
func (m *MockPriceService) History(ctx context.Context, goodID uuid.UUID, page store.Page) ([]*domain.Price, error) {
	args := m.Called(ctx, goodID, page)
	r0, _ := args.Get(0).([]*domain.Price)
	return r0, args.Error(1)
}

// DeletePrice implements the service.PriceService.DeletePrice method
func (m *MockPriceService) DeletePrice(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockDeliveryService is a testify mock of service.DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

var _ service.DeliveryService = (*MockDeliveryService)(nil)

// Get implements the service.DeliveryService.Get method
func (m *MockDeliveryService) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Delivery)
	return r0, args.Error(1)
}

// List implements the service.DeliveryService.List method
func (m *MockDeliveryService) List(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Delivery, error) {
	args := m.Called(ctx, buyerID, page)
	r0, _ := args.Get(0).([]*domain.Delivery)
	return r0, args.Error(1)
}

// AssignCourier implements the service.DeliveryService.AssignCourier method
func (m *MockDeliveryService) AssignCourier(ctx context.Context, id, employeeID uuid.UUID) (*domain.Delivery, error) {
	args := m.Called(ctx, id, employeeID)
	r0, _ := args.Get(0).(*domain.Delivery)
	return r0, args.Error(1)
}

// UpdateStatus implements the service.DeliveryService.UpdateStatus method
func (m *MockDeliveryService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DeliveryStatus) (*domain.Delivery, error) {
	args := m.Called(ctx, id, status)
	r0, _ := args.Get(0).(*domain.Delivery)
	return r0, args.Error(1)
}

// MockNotificationService is a testify mock of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

var _ service.NotificationService = (*MockNotificationService)(nil)

// Create implements the service.NotificationService.Create method
func (m *MockNotificationService) Create(ctx context.Context, buyerID uuid.UUID, message string) (*domain.Notification, error) {
	args := m.Called(ctx, buyerID, message)
	r0, _ := args.Get(0).(*domain.Notification)
	return r0, args.Error(1)
}

// ListForBuyer implements the service.NotificationService.ListForBuyer method
func (m *MockNotificationService) ListForBuyer(ctx context.Context, buyerID uuid.UUID, page store.Page) ([]*domain.Notification, error) {
	args := m.Called(ctx, buyerID, page)
	r0, _ := args.Get(0).([]*domain.Notification)
	return r0, args.Error(1)
}

// MarkRead implements the service.NotificationService.MarkRead method
func (m *MockNotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Notification)
	return r0, args.Error(1)
}

// Delete implements the service.NotificationService.Delete method
func (m *MockNotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// PurgeRead implements the service.NotificationService.PurgeRead method
func (m *MockNotificationService) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	r0 := args.Get(0).(int64)
	return r0, args.Error(1)
}

// MockTradeService is a testify mock of service.TradeService.
type MockTradeService struct {
	mock.Mock
}

var _ service.TradeService = (*MockTradeService)(nil)

// PlaceOrder implements the service.TradeService.PlaceOrder method
func (m *MockTradeService) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*domain.Order, *domain.Delivery, error) {
	args := m.Called(ctx, in)
	r0, _ := args.Get(0).(*domain.Order)
	r1, _ := args.Get(1).(*domain.Delivery)
	return r0, r1, args.Error(2)
}

// GetOrder implements the service.TradeService.GetOrder method
func (m *MockTradeService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	r0, _ := args.Get(0).(*domain.Order)
	return r0, args.Error(1)
}

// ListOrders implements the service.TradeService.ListOrders method
func (m *MockTradeService) ListOrders(ctx context.Context, buyerID *uuid.UUID, page store.Page) ([]*domain.Order, error) {
	args := m.Called(ctx, buyerID, page)
	r0, _ := args.Get(0).([]*domain.Order)
	return r0, args.Error(1)
}

// DeleteOrder implements the service.TradeService.DeleteOrder method
func (m *MockTradeService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
