package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/store"
)

// BuyerInput holds the writable fields of a buyer.
type BuyerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// BuyerService manages shop customers.
type BuyerService interface {
	Create(ctx context.Context, in BuyerInput) (*domain.Buyer, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Buyer, error)
	List(ctx context.Context, page store.Page) ([]*domain.Buyer, error)
	Update(ctx context.Context, id uuid.UUID, in BuyerInput) (*domain.Buyer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type buyerService struct {
	buyers store.BuyerStore
	db     store.Beginner
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewBuyerService creates a BuyerService.
func NewBuyerService(buyers store.BuyerStore, db store.Beginner, clock clockwork.Clock, logger *slog.Logger) BuyerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &buyerService{
		buyers: buyers,
		db:     db,
		clock:  clock,
		logger: logger.With("component", "buyer_service"),
	}
}

// Create implements BuyerService.Create
// It validates the input and relies on the unique email index for duplicates.
func (s *buyerService) Create(ctx context.Context, in BuyerInput) (*domain.Buyer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	buyer, err := domain.NewBuyer(in.Name, in.Email, in.Phone, in.Address, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.buyers.Create(ctx, buyer); err != nil {
		if errors.Is(err, store.ErrBuyerEmailExists) {
			log.Debug("attempted to create buyer with existing email")
		}
		return nil, fmt.Errorf("failed to create buyer: %w", err)
	}

	log.Info("buyer created", "buyer_id", buyer.ID)
	return buyer, nil
}

// Get implements BuyerService.Get
func (s *buyerService) Get(ctx context.Context, id uuid.UUID) (*domain.Buyer, error) {
	buyer, err := s.buyers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve buyer: %w", err)
	}
	return buyer, nil
}

// List implements BuyerService.List
func (s *buyerService) List(ctx context.Context, page store.Page) ([]*domain.Buyer, error) {
	buyers, err := s.buyers.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list buyers: %w", err)
	}
	return buyers, nil
}

// Update implements BuyerService.Update
func (s *buyerService) Update(ctx context.Context, id uuid.UUID, in BuyerInput) (*domain.Buyer, error) {
	var buyer *domain.Buyer
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.buyers.WithTx(tx)

		b, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve buyer for update: %w", err)
		}
		// The domain method normalizes the email and validates the result
		if err := b.Update(in.Name, in.Email, in.Phone, in.Address, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, b); err != nil {
			return fmt.Errorf("failed to update buyer: %w", err)
		}
		buyer = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buyer, nil
}

// Delete removes a buyer. Buyers with orders cannot be deleted.
func (s *buyerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.buyers.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete buyer: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("buyer deleted", "buyer_id", id)
	return nil
}
