package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
)

// NewsHandler serves the news feed.
type NewsHandler struct {
	news   service.NewsService
	logger *slog.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(news service.NewsService, logger *slog.Logger) *NewsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NewsHandler")
	}
	return &NewsHandler{
		news:   news,
		logger: logger.With(slog.String("component", "news_handler")),
	}
}

// CreatePost handles POST /posts.
func (h *NewsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	// The auth middleware stores the caller's claims in the context
	actor, ok := actorFromRequest(w, r, log)
	if !ok {
		return
	}

	// Parse and validate the request body
	var req PostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.news.Create(r.Context(), actor, req.Title, req.Body)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create post")
		return
	}

	log.Debug("post created", slog.String("post_id", post.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// GetPost handles GET /posts/{id}.
func (h *NewsHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.news.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// ListPosts handles GET /posts. Newest posts come first.
func (h *NewsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	posts, err := h.news.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list posts")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// UpdatePost handles PUT /posts/{id}.
func (h *NewsHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req PostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.news.Update(r.Context(), actor, id, req.Title, req.Body)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update post")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// DeletePost handles DELETE /posts/{id}.
func (h *NewsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.news.Delete(r.Context(), actor, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete post")
		return
	}
	shared.RespondNoContent(w)
}
