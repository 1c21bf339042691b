package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/service"
)

// NotificationHandler serves buyer notifications.
type NotificationHandler struct {
	notifications service.NotificationService
	logger        *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications service.NotificationService, logger *slog.Logger) *NotificationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NotificationHandler")
	}
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger.With(slog.String("component", "notification_handler")),
	}
}

// Create handles POST /notifications.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the request body
	var req NotificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid buyer_id")
		return
	}

	n, err := h.notifications.Create(r.Context(), buyerID, req.Message)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create notification")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, n)
}

// ListForBuyer handles GET /buyers/{id}/notifications. Unread come first.
func (h *NotificationHandler) ListForBuyer(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	list, err := h.notifications.ListForBuyer(r.Context(), buyerID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list notifications")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.notifications.MarkRead(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark notification read")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, n)
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete notification")
		return
	}
	shared.RespondNoContent(w)
}
