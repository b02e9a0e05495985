package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/contest"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/repository"
)

// ContestHandler handles contest lifecycle requests
type ContestHandler struct {
	service contest.Service
}

// NewContestHandler creates a new ContestHandler
func NewContestHandler(service contest.Service) *ContestHandler {
	return &ContestHandler{service: service}
}

// CreateContestRequest is the body of POST /api/v1/contests
type CreateContestRequest struct {
	Name                         string                  `json:"name" validate:"required,max=200"`
	Category                     string                  `json:"category" validate:"required,max=50"`
	Description                  string                  `json:"description" validate:"max=2000"`
	Unit                         string                  `json:"unit" validate:"max=20"`
	Currency                     string                  `json:"currency" validate:"omitempty,len=3,currency"`
	ResultSymbol                 string                  `json:"result_symbol" validate:"max=30"`
	MinPrediction                decimal.Decimal         `json:"min_prediction"`
	MaxPrediction                decimal.Decimal         `json:"max_prediction"`
	Increment                    decimal.Decimal         `json:"increment"`
	NumberOfEntriesPerPrediction int                     `json:"number_of_entries_per_prediction" validate:"min=1"`
	PricingType                  string                  `json:"pricing_type" validate:"required,pricing_type"`
	FlatPrice                    decimal.Decimal         `json:"flat_price"`
	Tiers                        []domain.PricingTier    `json:"tiers"`
	PrizePool                    decimal.Decimal         `json:"prize_pool"`
	PlacePercentages             domain.PlacePercentages `json:"place_percentages" validate:"required,min=1,dive"`
	StartTime                    *time.Time              `json:"start_time"`
	EndTime                      *time.Time              `json:"end_time" validate:"required"`
}

func (req *CreateContestRequest) toDomain() *domain.Contest {
	return &domain.Contest{
		Name:                         req.Name,
		Category:                     req.Category,
		Description:                  req.Description,
		Unit:                         req.Unit,
		Currency:                     req.Currency,
		ResultSymbol:                 req.ResultSymbol,
		MinPrediction:                req.MinPrediction,
		MaxPrediction:                req.MaxPrediction,
		Increment:                    req.Increment,
		NumberOfEntriesPerPrediction: req.NumberOfEntriesPerPrediction,
		PricingType:                  domain.PricingType(req.PricingType),
		FlatPrice:                    req.FlatPrice,
		Tiers:                        req.Tiers,
		PrizePool:                    req.PrizePool,
		PlacePercentages:             req.PlacePercentages,
		StartTime:                    req.StartTime,
		EndTime:                      req.EndTime,
	}
}

// HandleCreateContest creates a Draft contest with its generated slots
// @Summary Create contest
// @Description Validate a contest configuration, generate its prediction slots and store it as Draft
// @Tags contests
// @Accept json
// @Produce json
// @Param request body CreateContestRequest true "Contest configuration"
// @Success 201 {object} domain.Contest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/contests [post]
func (h *ContestHandler) HandleCreateContest(w http.ResponseWriter, r *http.Request) {
	var req CreateContestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create contest"); err != nil {
		return
	}

	created, err := h.service.CreateContest(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Create contest", err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// HandleListContests lists contests, optionally filtered
// @Summary List contests
// @Tags contests
// @Produce json
// @Param status query string false "Draft, Active, Completed"
// @Param category query string false "Category"
// @Param limit query int false "Maximum results"
// @Success 200 {array} domain.Contest
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contests [get]
func (h *ContestHandler) HandleListContests(w http.ResponseWriter, r *http.Request) {
	filter := repository.ContestFilter{Category: GetOptionalQueryParam(r, "category", "")}

	if raw := GetOptionalQueryParam(r, "status", ""); raw != "" {
		status := domain.ContestStatus(raw)
		switch status {
		case domain.ContestStatusDraft, domain.ContestStatusActive, domain.ContestStatusCompleted:
			filter.Status = &status
		default:
			respondError(w, http.StatusBadRequest, ErrMsgInvalidStatus)
			return
		}
	}

	limit, ok := getLimitParam(r, w)
	if !ok {
		return
	}
	filter.Limit = limit

	contests, err := h.service.ListContests(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "List contests", err)
		return
	}

	respondJSON(w, http.StatusOK, contests)
}

// HandleGetContest returns one contest with its slots
// @Summary Get contest
// @Tags contests
// @Produce json
// @Param id query string true "Contest ID"
// @Success 200 {object} domain.Contest
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contests/get [get]
func (h *ContestHandler) HandleGetContest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	c, err := h.service.GetContest(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get contest", err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// HandleGeneratePredictions regenerates a contest's slots
// @Summary Regenerate prediction slots
// @Description Replace the slots of a contest that has not sold any entry yet
// @Tags contests
// @Produce json
// @Param id query string true "Contest ID"
// @Success 200 {object} domain.Contest
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contests/generate [post]
func (h *ContestHandler) HandleGeneratePredictions(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	c, err := h.service.GeneratePredictions(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Generate predictions", err)
		return
	}

	logger.FromContext(r.Context()).Info("Predictions regenerated", "contestID", id, "slots", len(c.GeneratedPredictions))
	respondJSON(w, http.StatusOK, c)
}

// HandleTogglePublish flips a contest between Draft and Active
// @Summary Publish or unpublish contest
// @Tags contests
// @Produce json
// @Param id query string true "Contest ID"
// @Success 200 {object} domain.Contest
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contests/publish [post]
func (h *ContestHandler) HandleTogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	c, err := h.service.TogglePublish(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Toggle publish", err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// HandleDeleteContest soft-deletes a contest
// @Summary Delete contest
// @Tags contests
// @Produce json
// @Param id query string true "Contest ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contests/delete [post]
func (h *ContestHandler) HandleDeleteContest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUUIDQueryParam(r, w, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteContest(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete contest", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContestDeleted})
}
