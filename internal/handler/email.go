package handler

import (
	"context"
	"net/http"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// IngestionService defines the interface the email handler needs
type IngestionService interface {
	SyncInbox(ctx context.Context) (*model.SyncSummary, error)
	ListEmails(ctx context.Context) ([]*model.Email, error)
	ExtractJob(ctx context.Context, emailID string) (*model.Job, error)
}

// EmailHandler handles email and ingestion endpoints
type EmailHandler struct {
	ingestion IngestionService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(ingestion IngestionService) *EmailHandler {
	return &EmailHandler{ingestion: ingestion}
}

// ListEmails handles GET /api/emails
func (h *EmailHandler) ListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.ingestion.ListEmails(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, emails, nil)
}

// SyncEmails handles POST /api/sync-emails
func (h *EmailHandler) SyncEmails(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ingestion.SyncInbox(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summary, map[string]string{
		"emails": "/api/emails",
	})
}

// CreateJobFromEmail handles POST /api/create-job-from-email/{emailId}
func (h *EmailHandler) CreateJobFromEmail(w http.ResponseWriter, r *http.Request) {
	emailID := r.PathValue("emailId")
	if emailID == "" {
		WriteError(w, model.NewBadRequestError("email ID required"))
		return
	}

	job, err := h.ingestion.ExtractJob(r.Context(), emailID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, job, map[string]string{
		"self": "/api/jobs/" + job.ID,
	})
}
