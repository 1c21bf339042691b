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
	"github.com/phrazzld/crud-suite/internal/store"
)

// PriceService manages the price history of goods. Prices are append-only:
// a new price takes effect at its ValidFrom and supersedes earlier ones.
type PriceService interface {
	// SetPrice records a price for the good. A zero validFrom means now.
	SetPrice(ctx context.Context, goodID uuid.UUID, amount int64, currency string, validFrom time.Time) (*domain.Price, error)
	// CurrentPrice returns the price with the latest ValidFrom not after now,
	// or ErrNoPrice.
	CurrentPrice(ctx context.Context, goodID uuid.UUID) (*domain.Price, error)
	// History returns every price of the good, latest ValidFrom first.
	History(ctx context.Context, goodID uuid.UUID, page store.Page) ([]*domain.Price, error)
	DeletePrice(ctx context.Context, id uuid.UUID) error
}

type priceService struct {
	prices store.PriceStore
	goods  store.GoodStore
	db     store.Beginner
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewPriceService creates a PriceService.
func NewPriceService(
	prices store.PriceStore,
	goods store.GoodStore,
	db store.Beginner,
	clock clockwork.Clock,
	logger *slog.Logger,
) PriceService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &priceService{
		prices: prices,
		goods:  goods,
		db:     db,
		clock:  clock,
		logger: logger.With("component", "price_service"),
	}
}

// SetPrice implements PriceService.SetPrice
// A zero validFrom means the price takes effect now.
func (s *priceService) SetPrice(
	ctx context.Context,
	goodID uuid.UUID,
	amount int64,
	currency string,
	validFrom time.Time,
) (*domain.Price, error) {
	// Build and validate the price before opening a transaction
	price, err := domain.NewPrice(goodID, amount, currency, validFrom, s.clock.Now())
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// An unknown good is a 404 rather than a foreign key error
		if _, err := s.goods.WithTx(tx).GetByID(ctx, goodID); err != nil {
			return fmt.Errorf("failed to retrieve good for pricing: %w", err)
		}
		if err := s.prices.WithTx(tx).Create(ctx, price); err != nil {
			return fmt.Errorf("failed to create price: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("price set",
		"good_id", goodID,
		"price_id", price.ID,
		"amount", price.Amount,
		"currency", price.Currency,
		"valid_from", price.ValidFrom)
	return price, nil
}

// CurrentPrice implements PriceService.CurrentPrice
// It returns ErrNoPrice when the good has no price in effect yet.
func (s *priceService) CurrentPrice(ctx context.Context, goodID uuid.UUID) (*domain.Price, error) {
	if _, err := s.goods.GetByID(ctx, goodID); err != nil {
		return nil, fmt.Errorf("failed to retrieve good: %w", err)
	}
	return currentPrice(ctx, s.prices, goodID, s.clock.Now())
}

// History implements PriceService.History
func (s *priceService) History(ctx context.Context, goodID uuid.UUID, page store.Page) ([]*domain.Price, error) {
	if _, err := s.goods.GetByID(ctx, goodID); err != nil {
		return nil, fmt.Errorf("failed to retrieve good: %w", err)
	}
	prices, err := s.prices.History(ctx, goodID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

// DeletePrice implements PriceService.DeletePrice
func (s *priceService) DeletePrice(ctx context.Context, id uuid.UUID) error {
	if err := s.prices.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("price deleted", "price_id", id)
	return nil
}

// currentPrice resolves the price in effect at the given time.
func currentPrice(ctx context.Context, prices store.PriceStore, goodID uuid.UUID, at time.Time) (*domain.Price, error) {
	price, err := prices.Current(ctx, goodID, at)
	if err != nil {
		if errors.Is(err, store.ErrPriceNotFound) {
			return nil, ErrNoPrice
		}
		return nil, fmt.Errorf("failed to resolve current price: %w", err)
	}
	return price, nil
}
