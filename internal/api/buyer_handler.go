package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/service"
)

// BuyerHandler serves shop customers.
type BuyerHandler struct {
	buyers service.BuyerService
	logger *slog.Logger
}

// NewBuyerHandler creates a new BuyerHandler.
func NewBuyerHandler(buyers service.BuyerService, logger *slog.Logger) *BuyerHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BuyerHandler")
	}
	return &BuyerHandler{
		buyers: buyers,
		logger: logger.With(slog.String("component", "buyer_handler")),
	}
}

func buyerInput(req BuyerRequest) service.BuyerInput {
	return service.BuyerInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
}

// Create handles POST /buyers.
func (h *BuyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the request body
	var req BuyerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	buyer, err := h.buyers.Create(r.Context(), buyerInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create buyer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, buyer)
}

// Get handles GET /buyers/{id}.
func (h *BuyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	buyer, err := h.buyers.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get buyer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, buyer)
}

// List handles GET /buyers.
func (h *BuyerHandler) List(w http.ResponseWriter, r *http.Request) {
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	buyers, err := h.buyers.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list buyers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, buyers)
}

// Update handles PUT /buyers/{id}.
func (h *BuyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req BuyerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	buyer, err := h.buyers.Update(r.Context(), id, buyerInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update buyer")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, buyer)
}

// Delete handles DELETE /buyers/{id}.
func (h *BuyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.buyers.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete buyer")
		return
	}
	shared.RespondNoContent(w)
}
