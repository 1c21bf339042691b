package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/crud-suite/internal/config"
	"github.com/phrazzld/crud-suite/internal/events"
	"github.com/phrazzld/crud-suite/internal/platform/metrics"
	"github.com/phrazzld/crud-suite/internal/platform/postgres"
	"github.com/phrazzld/crud-suite/internal/platform/redis"
	"github.com/phrazzld/crud-suite/internal/service"
	"github.com/phrazzld/crud-suite/internal/service/auth"
	"github.com/phrazzld/crud-suite/internal/task"
)

// notificationTaskTimeout bounds a single notification insert.
const notificationTaskTimeout = 30 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	clock   clockwork.Clock
	metrics *metrics.Metrics
	redis   *goredis.Client

	jwtService auth.JWTService

	users         service.UserService
	news          service.NewsService
	projects      service.ProjectService
	tasks         service.TaskService
	buyers        service.BuyerService
	employees     service.EmployeeService
	goods         service.GoodService
	prices        service.PriceService
	deliveries    service.DeliveryService
	notifications service.NotificationService
	trade         service.TradeService

	// Asynchronous notifications
	emitter   *events.InMemoryEventEmitter
	queue     *task.TaskQueue
	pool      *task.WorkerPool
	retention *task.RetentionJob
}

// newApplication creates a new application instance with all dependencies
// initialized and the background workers started.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (_ *application, err error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		clock:   clockwork.NewRealClock(),
		metrics: metrics.New(),
	}

	// Release whatever was already started if a later step fails
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	// Initialize JWT authentication service
	app.jwtService, err = auth.NewJWTService(cfg.Auth, app.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	revocations, err := app.setupRevocationList(ctx)
	if err != nil {
		return nil, err
	}

	// Stores
	userStore := postgres.NewPostgresUserStore(db, logger)
	postStore := postgres.NewPostgresPostStore(db, logger)
	projectStore := postgres.NewPostgresProjectStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	buyerStore := postgres.NewPostgresBuyerStore(db, logger)
	employeeStore := postgres.NewPostgresEmployeeStore(db, logger)
	goodStore := postgres.NewPostgresGoodStore(db, logger)
	priceStore := postgres.NewPostgresPriceStore(db, logger)
	deliveryStore := postgres.NewPostgresDeliveryStore(db, logger)
	notificationStore := postgres.NewPostgresNotificationStore(db, logger)
	orderStore := postgres.NewPostgresOrderStore(db, logger)

	// Handlers are registered in startWorkers, once the queue exists
	app.emitter = events.NewInMemoryEventEmitter(logger, app.metrics)

	// Services
	app.users, err = service.NewUserService(service.UserServiceDeps{
		Users:          userStore,
		DB:             db,
		JWT:            app.jwtService,
		Hasher:         auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		Revocations:    revocations,
		Clock:          app.clock,
		AccessLifetime: time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	app.news = service.NewNewsService(postStore, db, app.clock, logger)
	app.projects = service.NewProjectService(projectStore, db, app.clock, logger)
	app.tasks = service.NewTaskService(taskStore, projectStore, db, app.clock, logger)
	app.buyers = service.NewBuyerService(buyerStore, db, app.clock, logger)
	app.employees = service.NewEmployeeService(employeeStore, db, app.clock, logger)
	app.goods = service.NewGoodService(goodStore, db, app.clock, logger)
	app.prices = service.NewPriceService(priceStore, goodStore, db, app.clock, logger)
	app.deliveries = service.NewDeliveryService(deliveryStore, employeeStore, db, app.emitter, app.clock, logger)
	app.notifications = service.NewNotificationService(notificationStore, buyerStore, app.clock, logger)
	app.trade = service.NewTradeService(service.TradeStores{
		Orders:     orderStore,
		Deliveries: deliveryStore,
		Buyers:     buyerStore,
		Goods:      goodStore,
		Prices:     priceStore,
		Employees:  employeeStore,
	}, db, app.emitter, app.clock, logger)

	if err := app.startWorkers(); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupRevocationList selects Redis when a URL is configured and the
// in-process list otherwise.
func (app *application) setupRevocationList(ctx context.Context) (auth.RevocationList, error) {
	if app.config.Redis.URL == "" {
		app.logger.Warn("redis not configured; refresh token revocations are kept in memory")
		return auth.NewMemoryRevocationList(app.clock), nil
	}

	client, err := redis.NewClient(ctx, app.config.Redis.URL, app.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client
	app.logger.Info("redis revocation list enabled")
	return redis.NewRevocationList(client, app.clock), nil
}

// startWorkers wires order and delivery events to the notification queue,
// starts the worker pool and schedules the retention job.
func (app *application) startWorkers() error {
	workers := app.config.Workers

	// Notification tasks are buffered in the queue and run by the pool
	app.queue = task.NewTaskQueue(workers.NotificationQueueSize, app.logger, app.metrics)
	app.pool = task.NewWorkerPool(app.queue, task.WorkerPoolConfig{
		WorkerCount: workers.NotificationWorkers,
		TaskTimeout: notificationTaskTimeout,
	}, app.logger, app.metrics)
	app.pool.Start()

	// order.placed and delivery.status_changed become notification tasks
	app.emitter.RegisterHandler(
		task.NewNotificationEventHandler(app.notifications, app.queue, app.logger, app.metrics),
	)

	// Purge old read notifications on the configured cron schedule
	var err error
	app.retention, err = task.NewRetentionJob(
		app.notifications,
		workers.NotificationRetentionDays,
		app.clock,
		app.logger,
		app.metrics,
	)
	if err != nil {
		return fmt.Errorf("failed to create retention job: %w", err)
	}
	if err := app.retention.Start(workers.RetentionSchedule); err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	app.logger.Info("background workers started",
		"notification_workers", workers.NotificationWorkers,
		"queue_size", workers.NotificationQueueSize,
		"retention_schedule", workers.RetentionSchedule)
	return nil
}

// Run serves HTTP and gRPC until ctx is cancelled, then shuts down.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.serve(ctx, app.setupRouter())
}

// cleanup stops the background workers and releases connections. The queue
// is closed first so the pool can drain it.
func (app *application) cleanup() {
	timeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if app.retention != nil {
		select {
		case <-app.retention.Stop().Done():
		case <-ctx.Done():
			app.logger.Warn("retention job did not stop before the shutdown deadline")
		}
	}

	if app.queue != nil {
		app.queue.Close()
	}
	if app.pool != nil {
		if err := app.pool.Shutdown(ctx); err != nil {
			app.logger.Warn("notification queue not drained before shutdown", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
