package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/crud-suite/internal/api"
	apiMiddleware "github.com/phrazzld/crud-suite/internal/api/middleware"
	"github.com/phrazzld/crud-suite/internal/config"
	"github.com/phrazzld/crud-suite/internal/domain"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Service groups disabled in the configuration are not mounted.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	// Forwarding headers are client-controlled unless a proxy rewrites them.
	if app.config.RateLimit.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)

	// Authentication and role gates shared by every service group
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	staff := apiMiddleware.RequireRole(domain.RoleEmployee, domain.RoleAdmin)
	adminOnly := apiMiddleware.RequireRole(domain.RoleAdmin)

	// One limiter for the whole API so clients share a bucket across groups
	limiter := apiMiddleware.NewRateLimiter(app.config.RateLimit.RequestsPerSecond, app.config.RateLimit.Burst)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Handler)

		if app.config.Services.IsEnabled(config.ServiceAuth) {
			authHandler := api.NewAuthHandler(app.users, app.logger)

			// Token endpoints are public

			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
			r.Post("/auth/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/auth/me", authHandler.Me)

				// User administration
				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get("/users", authHandler.ListUsers)
					r.Put("/users/{id}/role", authHandler.ChangeRole)
					r.Delete("/users/{id}", authHandler.DeleteUser)
				})
			})
		}

		if app.config.Services.IsEnabled(config.ServiceNews) {
			newsHandler := api.NewNewsHandler(app.news, app.logger)

			// Anyone can read news; writing requires a login
			r.Get("/posts", newsHandler.ListPosts)
			r.Get("/posts/{id}", newsHandler.GetPost)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/posts", newsHandler.CreatePost)
				r.Put("/posts/{id}", newsHandler.UpdatePost)
				r.Delete("/posts/{id}", newsHandler.DeletePost)
			})
		}

		if app.config.Services.IsEnabled(config.ServiceTracker) {
			trackerHandler := api.NewTrackerHandler(app.projects, app.tasks, app.logger)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)

				// Ownership is checked in the service layer
				r.Post("/projects", trackerHandler.CreateProject)
				r.Get("/projects", trackerHandler.ListProjects)
				r.Get("/projects/{id}", trackerHandler.GetProject)
				r.Put("/projects/{id}", trackerHandler.UpdateProject)
				r.Delete("/projects/{id}", trackerHandler.DeleteProject)

				r.Post("/projects/{id}/tasks", trackerHandler.CreateTask)
				r.Get("/projects/{id}/tasks", trackerHandler.ListTasks)
				r.Get("/tasks/{id}", trackerHandler.GetTask)
				r.Put("/tasks/{id}", trackerHandler.UpdateTask)
				r.Delete("/tasks/{id}", trackerHandler.DeleteTask)
			})
		}

		if app.config.Services.IsEnabled(config.ServiceShop) {
			app.mountShop(r, authMiddleware, staff, adminOnly)
		}
	})

	// Prometheus scrape endpoint
	r.Get("/metrics", app.metrics.Handler().ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// mountShop registers buyers, employees, goods, prices, deliveries,
// notifications and orders.
func (app *application) mountShop(
	r chi.Router,
	authMiddleware *apiMiddleware.AuthMiddleware,
	staff, adminOnly func(http.Handler) http.Handler,
) {
	buyerHandler := api.NewBuyerHandler(app.buyers, app.logger)
	employeeHandler := api.NewEmployeeHandler(app.employees, app.logger)
	goodHandler := api.NewGoodHandler(app.goods, app.prices, app.logger)
	deliveryHandler := api.NewDeliveryHandler(app.deliveries, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notifications, app.logger)
	orderHandler := api.NewOrderHandler(app.trade, app.logger)

	// Catalogue reads are public
	r.Get("/goods", goodHandler.List)
	r.Get("/goods/{id}", goodHandler.Get)
	r.Get("/goods/{id}/price", goodHandler.CurrentPrice)
	r.Get("/goods/{id}/prices", goodHandler.PriceHistory)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Any role; reads are not filtered by buyer ownership
		r.Get("/buyers", buyerHandler.List)
		r.Get("/buyers/{id}", buyerHandler.Get)
		r.Get("/buyers/{id}/notifications", notificationHandler.ListForBuyer)
		r.Post("/notifications/{id}/read", notificationHandler.MarkRead)

		r.Get("/deliveries/{id}", deliveryHandler.Get)

		r.Post("/orders", orderHandler.PlaceOrder)
		r.Get("/orders", orderHandler.List)
		r.Get("/orders/{id}", orderHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(staff)

			// Employees and admins
			r.Post("/buyers", buyerHandler.Create)
			r.Put("/buyers/{id}", buyerHandler.Update)
			r.Delete("/buyers/{id}", buyerHandler.Delete)

			r.Get("/employees", employeeHandler.List)
			r.Get("/employees/{id}", employeeHandler.Get)

			r.Post("/goods", goodHandler.Create)
			r.Put("/goods/{id}", goodHandler.Update)
			r.Delete("/goods/{id}", goodHandler.Delete)
			r.Post("/goods/{id}/prices", goodHandler.SetPrice)
			r.Delete("/prices/{id}", goodHandler.DeletePrice)

			r.Get("/deliveries", deliveryHandler.List)
			r.Put("/deliveries/{id}/courier", deliveryHandler.AssignCourier)
			r.Put("/deliveries/{id}/status", deliveryHandler.UpdateStatus)

			r.Post("/notifications", notificationHandler.Create)
			r.Delete("/notifications/{id}", notificationHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			// Staff records and order removal are admin only
			r.Post("/employees", employeeHandler.Create)
			r.Put("/employees/{id}", employeeHandler.Update)
			r.Delete("/employees/{id}", employeeHandler.Delete)

			r.Delete("/orders/{id}", orderHandler.Delete)
		})
	})
}
