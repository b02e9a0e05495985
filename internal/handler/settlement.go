package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/settlement"
)

const maxSettleBodyBytes = 4 << 10

// SettlementHandler handles settlement and results requests
type SettlementHandler struct {
	service settlement.Service
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(service settlement.Service) *SettlementHandler {
	return &SettlementHandler{service: service}
}

// SettleContestRequest optionally overrides the result source
type SettleContestRequest struct {
	ActualValue *decimal.Decimal `json:"actual_value"`
}

// HandleSettleContest settles a contest
// @Summary Settle contest
// @Description Rank eligible orders against the actual value and distribute prizes. Settles at most once.
// @Tags settlement
// @Accept json
// @Produce json
// @Param id query string true "Contest ID"
// @Param request body SettleContestRequest false "Manual actual value"
// @Success 200 {object} settlement.Report
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/contests/settle [post]
func (h *SettlementHandler) HandleSettleContest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	// The body is optional; an empty one settles from the result source
	var req SettleContestRequest
	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxSettleBodyBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				logger.FromContext(r.Context()).Warn("Failed to decode settle request", "error", err)
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
				return
			}
		}
	}

	report, err := h.service.SettleContest(r.Context(), id, req.ActualValue)
	if err != nil {
		respondServiceError(w, r, "Settle contest", err)
		return
	}

	logger.FromContext(r.Context()).Info("Contest settled via API", "contestID", id, "manual", req.ActualValue != nil)
	respondJSON(w, http.StatusOK, report)
}

// HandleGetResults returns the prize table and winners of a contest
// @Summary Contest results
// @Tags settlement
// @Produce json
// @Param id query string true "Contest ID"
// @Success 200 {object} settlement.Report
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contests/results [get]
func (h *SettlementHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	report, err := h.service.GetResults(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get results", err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}
