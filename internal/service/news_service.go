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

// NewsService manages the public news feed.
type NewsService interface {
	Create(ctx context.Context, actor Actor, title, body string) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	// List returns posts newest first.
	List(ctx context.Context, page store.Page) ([]*domain.Post, error)
	// Update edits a post. Only its author or an admin may do so.
	Update(ctx context.Context, actor Actor, id uuid.UUID, title, body string) (*domain.Post, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type newsService struct {
	posts  store.PostStore
	db     store.Beginner
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewNewsService creates a NewsService.
func NewNewsService(posts store.PostStore, db store.Beginner, clock clockwork.Clock, logger *slog.Logger) NewsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &newsService{
		posts:  posts,
		db:     db,
		clock:  clock,
		logger: logger.With("component", "news_service"),
	}
}

// Create implements NewsService.Create
func (s *newsService) Create(ctx context.Context, actor Actor, title, body string) (*domain.Post, error) {
	post, err := domain.NewPost(actor.UserID, title, body, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post created",
		"post_id", post.ID,
		"author_id", post.AuthorID)
	return post, nil
}

// Get implements NewsService.Get
func (s *newsService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return post, nil
}

// List implements NewsService.List
func (s *newsService) List(ctx context.Context, page store.Page) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Update implements NewsService.Update
// Only the author or an admin may edit a post.
func (s *newsService) Update(
	ctx context.Context,
	actor Actor,
	id uuid.UUID,
	title, body string,
) (*domain.Post, error) {
	var post *domain.Post
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.posts.WithTx(tx)

		p, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve post for update: %w", err)
		}
		// Check ownership against the stored author, not the request
		if !actor.CanManage(p.AuthorID) {
			return ErrForbidden
		}
		if err := p.Edit(title, body, s.clock.Now()); err != nil {
			return err
		}
		if err := txStore.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post updated", "post_id", id, "editor_id", actor.UserID)
	return post, nil
}

// Delete implements NewsService.Delete
// Only the author or an admin may delete a post.
func (s *newsService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	// Load and delete in one transaction so the ownership check applies to
	// the row being deleted
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.posts.WithTx(tx)

		p, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve post for deletion: %w", err)
		}
		if !actor.CanManage(p.AuthorID) {
			return ErrForbidden
		}
		if err := txStore.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("post deleted", "post_id", id, "deleted_by", actor.UserID)
	return nil
}
