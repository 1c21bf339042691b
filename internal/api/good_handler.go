package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
)

// GoodHandler serves the catalogue and its price history.
type GoodHandler struct {
	goods  service.GoodService
	prices service.PriceService
	logger *slog.Logger
}

// NewGoodHandler creates a new GoodHandler.
func NewGoodHandler(goods service.GoodService, prices service.PriceService, logger *slog.Logger) *GoodHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GoodHandler")
	}
	return &GoodHandler{
		goods:  goods,
		prices: prices,
		logger: logger.With(slog.String("component", "good_handler")),
	}
}

func goodInput(req GoodRequest) service.GoodInput {
	return service.GoodInput{SKU: req.SKU, Name: req.Name, Description: req.Description}
}

// Create handles POST /goods.
func (h *GoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the request body
	var req GoodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	good, err := h.goods.Create(r.Context(), goodInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create good")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, good)
}

// Get handles GET /goods/{id}.
func (h *GoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	good, err := h.goods.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get good")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, good)
}

// List handles GET /goods.
func (h *GoodHandler) List(w http.ResponseWriter, r *http.Request) {
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	goods, err := h.goods.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list goods")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, goods)
}

// Update handles PUT /goods/{id}.
func (h *GoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req GoodRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	good, err := h.goods.Update(r.Context(), id, goodInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update good")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, good)
}

// Delete handles DELETE /goods/{id}.
func (h *GoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.goods.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete good")
		return
	}
	shared.RespondNoContent(w)
}

// SetPrice handles POST /goods/{id}/prices.
func (h *GoodHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	goodID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req PriceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var validFrom time.Time
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	price, err := h.prices.SetPrice(r.Context(), goodID, req.Amount, req.Currency, validFrom)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to set price")
		return
	}

	log.Debug("price set", slog.String("good_id", goodID.String()), slog.Int64("amount", price.Amount))
	shared.RespondWithJSON(w, r, http.StatusCreated, price)
}

// CurrentPrice handles GET /goods/{id}/price.
func (h *GoodHandler) CurrentPrice(w http.ResponseWriter, r *http.Request) {
	goodID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	price, err := h.prices.CurrentPrice(r.Context(), goodID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get price")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, price)
}

// PriceHistory handles GET /goods/{id}/prices.
func (h *GoodHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	goodID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	prices, err := h.prices.History(r.Context(), goodID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get price history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prices)
}

// DeletePrice handles DELETE /prices/{id}.
func (h *GoodHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.prices.DeletePrice(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete price")
		return
	}
	shared.RespondNoContent(w)
}
