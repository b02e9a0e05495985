package handler

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/payout"
)

// PayoutHandler handles withdrawal requests
type PayoutHandler struct {
	service payout.Service
}

// NewPayoutHandler creates a new PayoutHandler
func NewPayoutHandler(service payout.Service) *PayoutHandler {
	return &PayoutHandler{service: service}
}

// RequestPayoutRequest is the body of POST /api/v1/payouts
type RequestPayoutRequest struct {
	UserID          string          `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" validate:"omitempty,len=3,currency"`
	Method          string          `json:"method" validate:"required,payout_method"`
	DestinationCard string          `json:"destination_card" validate:"required,max=255"`
}

// BalanceResponse reports a user's withdrawable winnings
type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// HandleRequestPayout withdraws winnings to a card
// @Summary Request payout
// @Description Debit the user's winnings and send them to the payment processor. Failures refund the balance.
// @Tags payouts
// @Accept json
// @Produce json
// @Param request body RequestPayoutRequest true "Payout"
// @Success 201 {object} domain.Payout
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/payouts [post]
func (h *PayoutHandler) HandleRequestPayout(w http.ResponseWriter, r *http.Request) {
	var req RequestPayoutRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Request payout"); err != nil {
		return
	}

	p, err := h.service.RequestPayout(r.Context(), payout.Request{
		UserID:          req.UserID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Method:          domain.PayoutMethod(strings.ToLower(req.Method)),
		DestinationCard: req.DestinationCard,
	})
	if err != nil {
		respondServiceError(w, r, "Request payout", err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// HandleGetPayoutStatus returns a payout, refreshed from the processor while it is in flight
// @Summary Payout status
// @Tags payouts
// @Produce json
// @Param id query string true "Payout ID"
// @Success 200 {object} domain.Payout
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/payouts/status [get]
func (h *PayoutHandler) HandleGetPayoutStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	p, err := h.service.GetPayoutStatus(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get payout status", err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleQuoteFee previews the fee and the net amount of a payout
// @Summary Payout fee quote
// @Tags payouts
// @Produce json
// @Param amount query string true "Amount"
// @Param method query string true "instant or standard"
// @Param currency query string false "ISO 4217 code"
// @Success 200 {object} payout.FeeQuote
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/payouts/fee [get]
func (h *PayoutHandler) HandleQuoteFee(w http.ResponseWriter, r *http.Request) {
	rawAmount, ok := GetQueryParam(r, w, "amount")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidAmount)
		return
	}
	method, ok := GetQueryParam(r, w, "method")
	if !ok {
		return
	}
	currency := strings.ToUpper(GetOptionalQueryParam(r, "currency", domain.DefaultCurrency))

	quote, err := h.service.QuoteFee(amount, domain.PayoutMethod(strings.ToLower(method)), currency)
	if err != nil {
		respondServiceError(w, r, "Quote fee", err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// HandleGetBalance returns the withdrawable winnings of a user
// @Summary Ledger balance
// @Tags payouts
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} BalanceResponse
// @Router /api/v1/payouts/balance [get]
func (h *PayoutHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Balance: balance})
}
