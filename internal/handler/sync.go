package handler

import (
	"context"
	"net/http"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// CalendarService defines the interface the sync handler needs
type CalendarService interface {
	SyncToCalendar(ctx context.Context) (*model.SyncReport, error)
}

// SyncHandler handles the calendar sync endpoint
type SyncHandler struct {
	calendar CalendarService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(calendar CalendarService) *SyncHandler {
	return &SyncHandler{calendar: calendar}
}

// SyncCalendar handles POST /api/sync-calendar
func (h *SyncHandler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	report, err := h.calendar.SyncToCalendar(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, report, map[string]string{
		"events": "/api/events",
	})
}
