package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// GoodInput holds the writable fields of a good.
type GoodInput struct {
	SKU         string
	Name        string
	Description string
}

// GoodService manages the product catalogue.
type GoodService interface {
	Create(ctx context.Context, in GoodInput) (*domain.Good, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Good, error)
	List(ctx context.Context, page store.Page) ([]*domain.Good, error)
	Update(ctx context.Context, id uuid.UUID, in GoodInput) (*domain.Good, error)
	// Delete removes a good together with its price history.
	// Goods that were ordered cannot be deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

type goodService struct {
	goods  store.GoodStore
	db     store.Beginner
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewGoodService creates a GoodService.
func NewGoodService(goods store.GoodStore, db store.Beginner, clock clockwork.Clock, logger *slog.Logger) GoodService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &goodService{
		goods:  goods,
		db:     db,
		clock:  clock,
		logger: logger.With("component", "good_service"),
	}
}

// Create implements GoodService.Create
func (s *goodService) Create(ctx context.Context, in GoodInput) (*domain.Good, error) {
	good, err := domain.NewGood(in.SKU, in.Name, in.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.goods.Create(ctx, good); err != nil {
		return nil, fmt.Errorf("failed to create good: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("good created", "good_id", good.ID, "sku", good.SKU)
	return good, nil
}

// Get implements GoodService.Get
func (s *goodService) Get(ctx context.Context, id uuid.UUID) (*domain.Good, error) {
	good, err := s.goods.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve good: %w", err)
	}
	return good, nil
}

// List implements GoodService.List
func (s *goodService) List(ctx context.Context, page store.Page) ([]*domain.Good, error) {
	goods, err := s.goods.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list goods: %w", err)
	}
	return goods, nil
}

// Update implements GoodService.Update
func (s *goodService) Update(ctx context.Context, id uuid.UUID, in GoodInput) (*domain.Good, error) {
	var good *domain.Good
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.goods.WithTx(tx)

		g, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve good for update: %w", err)
		}
		// Changing the SKU to one already in use fails on the unique index
		if err := g.Update(in.SKU, in.Name, in.Description, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, g); err != nil {
			return fmt.Errorf("failed to update good: %w", err)
		}
		good = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return good, nil
}

// Delete implements GoodService.Delete
// Goods referenced by orders cannot be deleted.
func (s *goodService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.goods.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete good: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("good deleted", "good_id", id)
	return nil
}
