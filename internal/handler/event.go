package handler

import (
	"context"
	"net/http"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// EventService defines the interface the event handler needs
type EventService interface {
	CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
}

// EventHandler handles event endpoints
type EventHandler struct {
	events EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events EventService) *EventHandler {
	return &EventHandler{events: events}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var fieldErrors []model.FieldError
	if req.JobID == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}
	if req.Start.IsZero() {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "start",
			Message: "start is required",
		})
	}
	if req.End.IsZero() {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "end",
			Message: "end is required",
		})
	}
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	event, err := h.events.CreateEvent(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event, map[string]string{
		"self": "/api/events/" + event.ID,
		"job":  "/api/jobs/" + event.JobID,
	})
}

// GetEvent handles GET /api/events/{eventId}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	event, err := h.events.GetEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event, map[string]string{
		"self": "/api/events/" + event.ID,
		"job":  "/api/jobs/" + event.JobID,
	})
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, events, nil)
}
