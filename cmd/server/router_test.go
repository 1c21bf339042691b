package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crud-suite/internal/config"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/mocks"
	"github.com/phrazzld/crud-suite/internal/platform/metrics"
	"github.com/phrazzld/crud-suite/internal/service/auth"
)

type testServices struct {
	goods  *mocks.MockGoodService
	orders *mocks.MockTradeService
	users  *mocks.MockUserService
}

// newTestApplication builds an application whose services are mocks and
// whose tokens are "<role>-token" strings.
func newTestApplication(t *testing.T, enabled ...string) (*application, testServices) {
	t.Helper()

	svcs := testServices{
		goods:  &mocks.MockGoodService{},
		orders: &mocks.MockTradeService{},
		users:  &mocks.MockUserService{},
	}
	t.Cleanup(func() {
		svcs.goods.AssertExpectations(t)
		svcs.orders.AssertExpectations(t)
		svcs.users.AssertExpectations(t)
	})

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			role := domain.Role(strings.TrimSuffix(token, "-token"))
			if !role.Valid() {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: uuid.New(), Role: role}, nil
		},
	}

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080, GRPCPort: 9090, LogLevel: "info", ShutdownTimeoutSeconds: 5},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Services:  config.ServicesConfig{Enabled: enabled},
	}

	app := &application{
		config:        cfg,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:         clockwork.NewFakeClock(),
		metrics:       metrics.New(),
		jwtService:    jwtService,
		users:         svcs.users,
		news:          &mocks.MockNewsService{},
		projects:      &mocks.MockProjectService{},
		tasks:         &mocks.MockTaskService{},
		buyers:        &mocks.MockBuyerService{},
		employees:     &mocks.MockEmployeeService{},
		goods:         svcs.goods,
		prices:        &mocks.MockPriceService{},
		deliveries:    &mocks.MockDeliveryService{},
		notifications: &mocks.MockNotificationService{},
		trade:         svcs.orders,
	}
	return app, svcs
}

func serve(t *testing.T, h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	rec := serve(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_PublicCatalogue(t *testing.T) {
	app, svcs := newTestApplication(t)
	svcs.goods.On("List", mock.Anything, mock.Anything).Return([]*domain.Good{}, nil).Once()

	rec := serve(t, app.setupRouter(), http.MethodGet, "/api/goods", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RoleGating(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"create good without token", http.MethodPost, "/api/goods", "", http.StatusUnauthorized},
		{"create good with bad token", http.MethodPost, "/api/goods", "bogus-token", http.StatusUnauthorized},
		{"create good as customer", http.MethodPost, "/api/goods", "customer-token", http.StatusForbidden},
		{"list employees as customer", http.MethodGet, "/api/employees", "customer-token", http.StatusForbidden},
		{"create employee as employee", http.MethodPost, "/api/employees", "employee-token", http.StatusForbidden},
		{"delete order as employee", http.MethodDelete, "/api/orders/" + uuid.NewString(), "employee-token", http.StatusForbidden},
		{"list users as employee", http.MethodGet, "/api/users", "employee-token", http.StatusForbidden},
		{"me without token", http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized},
		{"projects without token", http.MethodGet, "/api/projects", "", http.StatusUnauthorized},
		{"create post without token", http.MethodPost, "/api/posts", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApplication(t)
			rec := serve(t, app.setupRouter(), tt.method, tt.target, tt.token)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_AdminReachesUserList(t *testing.T) {
	app, svcs := newTestApplication(t)
	svcs.users.On("ListUsers", mock.Anything, mock.Anything).Return([]*domain.User{}, nil).Once()

	rec := serve(t, app.setupRouter(), http.MethodGet, "/api/users", "admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_DisabledGroupsAreNotMounted(t *testing.T) {
	app, _ := newTestApplication(t, config.ServiceAuth)
	router := app.setupRouter()

	for _, target := range []string{"/api/goods", "/api/posts", "/api/projects"} {
		rec := serve(t, router, http.MethodGet, target, "admin-token")
		require.Equal(t, http.StatusNotFound, rec.Code, target)
	}

	rec := serve(t, router, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// sendForwarded issues GET /api/goods from one socket peer with a different
// X-Forwarded-For value per request and returns the status codes.
func sendForwarded(t *testing.T, h http.Handler, n int) []int {
	t.Helper()
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/goods", nil)
		req.RemoteAddr = "192.0.2.10:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestRouter_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	app, svcs := newTestApplication(t)
	app.config.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2}
	svcs.goods.On("List", mock.Anything, mock.Anything).Return([]*domain.Good{}, nil).Times(2)

	codes := sendForwarded(t, app.setupRouter(), 5)

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestRouter_RateLimitTrustsForwardedHeadersWhenConfigured(t *testing.T) {
	app, svcs := newTestApplication(t)
	app.config.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2, TrustProxyHeaders: true}
	svcs.goods.On("List", mock.Anything, mock.Anything).Return([]*domain.Good{}, nil).Times(5)

	codes := sendForwarded(t, app.setupRouter(), 5)

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}
