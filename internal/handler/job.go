package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// JobService defines the interface the job handler needs
type JobService interface {
	CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	ListJobs(ctx context.Context, classification string, limit int) ([]*model.Job, error)
	SearchJobs(ctx context.Context, term string) ([]*model.Job, error)
	UpdateStatus(ctx context.Context, id string, newStatus string) (*model.Job, error)
	AddAdditionalData(ctx context.Context, id string, data string) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// JobHandler handles job endpoints
type JobHandler struct {
	jobs JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// CreateJob handles POST /api/jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req model.CreateJobRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, job, map[string]string{
		"self": "/api/jobs/" + job.ID,
	})
}

// GetJob handles GET /api/jobs/{jobId}
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		WriteError(w, model.NewBadRequestError("job ID required"))
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, job, map[string]string{
		"self": "/api/jobs/" + job.ID,
	})
}

// ListJobs handles GET /api/jobs?limit=N&classification=active
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, model.NewBadRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	classification := r.URL.Query().Get("classification")

	jobs, err := h.jobs.ListJobs(r.Context(), classification, limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, jobs, nil)
}

// SearchJobs handles GET /api/jobs/search?term=
func (h *JobHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	jobs, err := h.jobs.SearchJobs(r.Context(), term)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, jobs, nil)
}

// UpdateStatus handles PUT /api/jobs/{jobId}
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		WriteError(w, model.NewBadRequestError("job ID required"))
		return
	}

	var req model.UpdateJobStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	job, err := h.jobs.UpdateStatus(r.Context(), jobID, req.Status)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, job, map[string]string{
		"self": "/api/jobs/" + job.ID,
	})
}

// AddAdditionalData handles PATCH /api/jobs/{jobId}
func (h *JobHandler) AddAdditionalData(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		WriteError(w, model.NewBadRequestError("job ID required"))
		return
	}

	var req model.AddJobDataRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	job, err := h.jobs.AddAdditionalData(r.Context(), jobID, req.AdditionalData)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, job, map[string]string{
		"self": "/api/jobs/" + job.ID,
	})
}

// DeleteJob handles DELETE /api/jobs/{jobId}
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		WriteError(w, model.NewBadRequestError("job ID required"))
		return
	}

	if err := h.jobs.DeleteJob(r.Context(), jobID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
