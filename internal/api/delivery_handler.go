package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/domain"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
)

// DeliveryHandler serves deliveries and their status workflow.
type DeliveryHandler struct {
	deliveries service.DeliveryService
	logger     *slog.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveries service.DeliveryService, logger *slog.Logger) *DeliveryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeliveryHandler")
	}
	return &DeliveryHandler{
		deliveries: deliveries,
		logger:     logger.With(slog.String("component", "delivery_handler")),
	}
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	delivery, err := h.deliveries.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get delivery")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, delivery)
}

// List handles GET /deliveries with an optional buyer_id filter.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	// Without buyer_id the records of every buyer are listed
	buyerID, err := optionalUUIDQuery(r, "buyer_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deliveries, err := h.deliveries.List(r.Context(), buyerID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list deliveries")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deliveries)
}

// AssignCourier handles PUT /deliveries/{id}/courier.
func (h *DeliveryHandler) AssignCourier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req AssignCourierRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	// The validator has checked the format; convert it to a uuid.UUID
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid employee_id")
		return
	}

	delivery, err := h.deliveries.AssignCourier(r.Context(), id, employeeID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign courier")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, delivery)
}

// UpdateStatus handles PUT /deliveries/{id}/status.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req DeliveryStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Forbidden transitions come back as service.ErrInvalidTransition (409)
	delivery, err := h.deliveries.UpdateStatus(r.Context(), id, domain.DeliveryStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update delivery status")
		return
	}

	log.Debug("delivery status updated",
		slog.String("delivery_id", id.String()),
		slog.String("status", string(delivery.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, delivery)
}
