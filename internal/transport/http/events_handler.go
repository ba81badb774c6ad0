package http

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
)

// EventsHandler handles HTTP requests for outbox events.
type EventsHandler struct {
	listEvents *list_events.Query
	logger     *zap.Logger
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{listEvents: listEvents, logger: logger}
}

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID     string `json:"event_id"`
	EventType   string `json:"event_type"`
	AggregateID string `json:"aggregate_id"`
	Payload     string `json:"payload"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events []Event `json:"events"`
}

// List handles GET /api/v1/events?aggregate_id=&limit=.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &list_events.Request{AggregateID: query.Get("aggregate_id")}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit: must be a non-negative integer")
			return
		}
		req.Limit = limit
	}

	dtos, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch events")
		return
	}

	events := make([]Event, 0, len(dtos))
	for _, e := range dtos {
		events = append(events, Event{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.Payload,
			Status:      e.Status,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}
