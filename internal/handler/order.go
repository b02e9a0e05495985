package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/order"
)

// OrderHandler handles order requests
type OrderHandler struct {
	service order.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// PlaceOrderRequest is the body of POST /api/v1/orders
type PlaceOrderRequest struct {
	UserID       string            `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ContestID    uuid.UUID         `json:"contest_id" validate:"required"`
	TierIDs      []string          `json:"tier_ids" validate:"max=100,unique,dive,required,max=50"`
	CustomValues []decimal.Decimal `json:"custom_values" validate:"max=100"`
}

// ConfirmPaymentRequest carries the processor's payment reference
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required,max=255"`
}

// HandlePlaceOrder creates a pending order
// @Summary Place order
// @Description Buy entries on generated slots and/or custom values of an Active contest
// @Tags orders
// @Accept json
// @Produce json
// @Param request body PlaceOrderRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/orders [post]
func (h *OrderHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Place order"); err != nil {
		return
	}

	placed, err := h.service.PlaceOrder(r.Context(), order.PlaceOrderInput{
		UserID:       req.UserID,
		ContestID:    req.ContestID,
		TierIDs:      req.TierIDs,
		CustomValues: req.CustomValues,
	})
	if err != nil {
		respondServiceError(w, r, "Place order", err)
		return
	}

	respondJSON(w, http.StatusCreated, placed)
}

// HandleGetOrder returns one order
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id query string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/orders/get [get]
func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get order", err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// HandleListOrders lists the orders of a contest or of a user
// @Summary List orders
// @Tags orders
// @Produce json
// @Param contest_id query string false "Contest ID"
// @Param user_id query string false "User ID"
// @Param limit query int false "Maximum results"
// @Success 200 {array} domain.Order
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	filter := domain.OrderFilter{UserID: GetOptionalQueryParam(r, "user_id", "")}

	if raw := GetOptionalQueryParam(r, "contest_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid contest_id: must be a UUID")
			return
		}
		filter.ContestID = &id
	}
	if filter.ContestID == nil && filter.UserID == "" {
		respondError(w, http.StatusBadRequest, ErrMsgOrderFilterNeeded)
		return
	}

	limit, ok := getLimitParam(r, w)
	if !ok {
		return
	}
	filter.Limit = limit

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "List orders", err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// HandleConfirmPayment records a successful payment and takes the slot entries
// @Summary Confirm payment
// @Tags orders
// @Accept json
// @Produce json
// @Param id query string true "Order ID"
// @Param request body ConfirmPaymentRequest true "Payment reference"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/orders/confirm [post]
func (h *OrderHandler) HandleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	var req ConfirmPaymentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Confirm payment"); err != nil {
		return
	}

	o, err := h.service.ConfirmPayment(r.Context(), id, req.PaymentReference)
	if err != nil {
		respondServiceError(w, r, "Confirm payment", err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// HandleCancelOrder cancels a pending order
// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id query string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/orders/cancel [post]
func (h *OrderHandler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	o, err := h.service.CancelOrder(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Cancel order", err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}
