package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a client response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgAuthFailedError    = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequests    = "Too many requests. Please try again later."

	// Contest messages
	ErrMsgInvalidRangeError       = "Invalid prediction range"
	ErrMsgInvalidPricingTierError = "Invalid pricing tier"
	ErrMsgContestNotFoundError    = "Contest not found"
	ErrMsgContestNotActiveError   = "Contest is not accepting orders"
	ErrMsgRegenerationLockedError = "Predictions cannot be regenerated once entries exist"
	ErrMsgCannotPublishError      = "Contest cannot be published in its current state"
	ErrMsgContestCompletedError   = "Contest is already completed"
	ErrMsgAlreadySettledError     = "Contest has already been settled"
	ErrMsgResultUnavailableError  = "Contest result is not available yet"
	ErrMsgInvalidContestState     = "Contest is in the wrong state for this action"

	// Order messages
	ErrMsgOrderNotFoundError   = "Order not found"
	ErrMsgSlotNotFoundError    = "Prediction slot not found"
	ErrMsgSlotFullError        = "Prediction slot is full"
	ErrMsgInvalidOrderState    = "Order is in the wrong state for this action"
	ErrMsgPredictionRangeError = "Prediction value is outside the contest range"

	// Payout messages
	ErrMsgPayoutNotFoundError      = "Payout not found"
	ErrMsgPayoutFailedError        = "Payout failed. Your balance has been restored."
	ErrMsgInvalidPayoutMethodError = "Invalid payout method"
	ErrMsgInsufficientFundsError   = "Insufficient balance"
	ErrMsgPayoutBelowMinimumError  = "Amount does not cover the payout fee"
	ErrMsgProcessorUnavailable     = "Payment processor is unavailable. Please try again later."

	ErrMsgInvalidInputError = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrContestNotFound):
		return http.StatusNotFound, ErrMsgContestNotFoundError
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFoundError
	case errors.Is(err, domain.ErrPayoutNotFound):
		return http.StatusNotFound, ErrMsgPayoutNotFoundError
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError

	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, ErrMsgInvalidRangeError
	case errors.Is(err, domain.ErrInvalidPricingTier):
		return http.StatusBadRequest, ErrMsgInvalidPricingTierError
	case errors.Is(err, domain.ErrPredictionOutRange):
		return http.StatusBadRequest, ErrMsgPredictionRangeError
	case errors.Is(err, domain.ErrInvalidPayoutMethod):
		return http.StatusBadRequest, ErrMsgInvalidPayoutMethodError
	case errors.Is(err, domain.ErrPayoutBelowMinimum):
		return http.StatusBadRequest, ErrMsgPayoutBelowMinimumError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError

	case errors.Is(err, domain.ErrAlreadySettled):
		return http.StatusConflict, ErrMsgAlreadySettledError
	case errors.Is(err, domain.ErrSlotFull):
		return http.StatusConflict, ErrMsgSlotFullError
	case errors.Is(err, domain.ErrRegenerationLocked):
		return http.StatusConflict, ErrMsgRegenerationLockedError
	case errors.Is(err, domain.ErrCannotPublish):
		return http.StatusConflict, ErrMsgCannotPublishError
	case errors.Is(err, domain.ErrContestCompleted):
		return http.StatusConflict, ErrMsgContestCompletedError
	case errors.Is(err, domain.ErrContestNotActive):
		return http.StatusConflict, ErrMsgContestNotActiveError
	case errors.Is(err, domain.ErrInvalidContestState):
		return http.StatusConflict, ErrMsgInvalidContestState
	case errors.Is(err, domain.ErrInvalidOrderState):
		return http.StatusConflict, ErrMsgInvalidOrderState
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict, ErrMsgInsufficientFundsError

	case errors.Is(err, domain.ErrPayoutFailed):
		return http.StatusBadGateway, ErrMsgPayoutFailedError
	case errors.Is(err, domain.ErrResultUnavailable):
		return http.StatusServiceUnavailable, ErrMsgResultUnavailableError
	case errors.Is(err, domain.ErrProcessorUnavailable):
		return http.StatusServiceUnavailable, ErrMsgProcessorUnavailable
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
