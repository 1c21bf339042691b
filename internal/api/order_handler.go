package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
	"github.com/phrazzld/crud-suite/internal/service"
)

// OrderHandler serves order placement and order records.
type OrderHandler struct {
	trade  service.TradeService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(trade service.TradeService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OrderHandler")
	}
	return &OrderHandler{
		trade:  trade,
		logger: logger.With(slog.String("component", "order_handler")),
	}
}

// PlaceOrder handles POST /orders.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Parse and validate the request body
	var req PlaceOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// IDs arrive as strings; convert them before calling the service
	in, err := placeOrderInput(req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Order and delivery are created in one transaction
	order, delivery, err := h.trade.PlaceOrder(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to place order")
		return
	}

	log.Info("order placed via API",
		slog.String("order_id", order.ID.String()),
		slog.String("delivery_id", delivery.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, PlaceOrderResponse{Order: order, Delivery: delivery})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.trade.GetOrder(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get order")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, order)
}

// List handles GET /orders with an optional buyer_id filter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
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

	orders, err := h.trade.ListOrders(r.Context(), buyerID, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list orders")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orders)
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.trade.DeleteOrder(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete order")
		return
	}
	shared.RespondNoContent(w)
}

// placeOrderInput converts a validated request to service input. Any
// malformed ID yields errInvalidParam.
func placeOrderInput(req PlaceOrderRequest) (service.PlaceOrderInput, error) {
	buyerID, err := uuid.Parse(req.BuyerID)
	if err != nil {
		return service.PlaceOrderInput{}, errInvalidParam
	}
	goodID, err := uuid.Parse(req.GoodID)
	if err != nil {
		return service.PlaceOrderInput{}, errInvalidParam
	}
	in := service.PlaceOrderInput{
		BuyerID:  buyerID,
		GoodID:   goodID,
		Quantity: req.Quantity,
		Address:  req.Address,
	}
	if req.SellerID != nil {
		sellerID, err := uuid.Parse(*req.SellerID)
		if err != nil {
			return service.PlaceOrderInput{}, errInvalidParam
		}
		in.SellerID = &sellerID
	}
	return in, nil
}
