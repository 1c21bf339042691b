package api

import (
	"time"

	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/service/auth"
)

// Auth

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Login                string `json:"login"                 validate:"required,min=3,max=64"`
	Password             string `json:"password"              validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries a refresh token for the refresh and logout endpoints.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangeRoleRequest defines the payload for the admin role change endpoint.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin employee customer"`
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 expiry of the access token.
	ExpiresAt string `json:"expires_at"`
}

// TokenResponse is returned by the refresh endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Login:     u.Login,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	return out
}

func tokenPairToResponse(p *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    p.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// News

// PostRequest defines the payload for creating and updating a post.
type PostRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"required"`
}

// Tracker

// ProjectRequest defines the payload for creating and updating a project.
type ProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Description string `json:"description"`
}

// TaskRequest defines the payload for creating and updating a task.
// An omitted status means todo.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
	AssigneeID  *string    `json:"assignee_id" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
}

// Shop

// BuyerRequest defines the payload for creating and updating a buyer.
type BuyerRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"omitempty,max=32"`
	Address string `json:"address"`
}

// EmployeeRequest defines the payload for creating and updating an employee.
// An omitted hired_at means today on create and unchanged on update.
type EmployeeRequest struct {
	FullName string     `json:"full_name" validate:"required,max=200"`
	Position string     `json:"position"  validate:"required,max=100"`
	Email    string     `json:"email"     validate:"required,email"`
	HiredAt  *time.Time `json:"hired_at"`
}

// GoodRequest defines the payload for creating and updating a good.
type GoodRequest struct {
	SKU         string `json:"sku"         validate:"required,max=64"`
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description"`
}

// PriceRequest defines the payload for setting a good's price.
// Amount is in minor currency units.
type PriceRequest struct {
	Amount    int64      `json:"amount"     validate:"gt=0,lte=9223372036854775"`
	Currency  string     `json:"currency"   validate:"required,iso4217"`
	ValidFrom *time.Time `json:"valid_from"`
}

// AssignCourierRequest names the employee delivering an order.
type AssignCourierRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

// DeliveryStatusRequest moves a delivery to a new status.
type DeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
}

// NotificationRequest defines the payload for creating a notification.
type NotificationRequest struct {
	BuyerID string `json:"buyer_id" validate:"required,uuid"`
	Message string `json:"message"  validate:"required,max=1000"`
}

// PlaceOrderRequest defines the payload for placing an order.
type PlaceOrderRequest struct {
	BuyerID  string  `json:"buyer_id"  validate:"required,uuid"`
	GoodID   string  `json:"good_id"   validate:"required,uuid"`
	Quantity int     `json:"quantity"  validate:"gte=1,lte=1000"`
	Address  string  `json:"address"`
	SellerID *string `json:"seller_id" validate:"omitempty,uuid"`
}

// PlaceOrderResponse returns the stored order with its delivery.
type PlaceOrderResponse struct {
	Order    *domain.Order    `json:"order"`
	Delivery *domain.Delivery `json:"delivery"`
}
