package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/osse101/PrizePool_Go/internal/eventlog"
)

// EventLogHandler serves the contest audit trail
type EventLogHandler struct {
	service eventlog.Service
}

// NewEventLogHandler creates a new EventLogHandler
func NewEventLogHandler(service eventlog.Service) *EventLogHandler {
	return &EventLogHandler{service: service}
}

// HandleListEvents lists logged domain events, newest first
// @Summary List audit events
// @Tags events
// @Produce json
// @Param contest_id query string false "Contest ID"
// @Param user_id query string false "User ID"
// @Param type query string false "Event type, e.g. order.confirmed"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Maximum results"
// @Success 200 {array} eventlog.Event
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/events [get]
func (h *EventLogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	var filter eventlog.EventFilter
	filter.ContestID = optionalString(r, "contest_id")
	filter.UserID = optionalString(r, "user_id")
	filter.EventType = optionalString(r, "type")

	var ok bool
	if filter.Since, ok = getTimeParam(r, w, "since"); !ok {
		return
	}
	if filter.Until, ok = getTimeParam(r, w, "until"); !ok {
		return
	}
	if filter.Limit, ok = getLimitParam(r, w); !ok {
		return
	}

	events, err := h.service.ListEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "List events", err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

func optionalString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func getTimeParam(r *http.Request, w http.ResponseWriter, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidTime, name))
		return nil, false
	}
	return &t, true
}
