package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradeline/jobtrack/api/internal/model"
	"github.com/tradeline/jobtrack/api/internal/service"
)

// ============================================================================
// Mock JobService
// ============================================================================

type mockJobService struct {
	createJobFunc         func(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	getJobFunc            func(ctx context.Context, id string) (*model.Job, error)
	listJobsFunc          func(ctx context.Context, classification string, limit int) ([]*model.Job, error)
	searchJobsFunc        func(ctx context.Context, term string) ([]*model.Job, error)
	updateStatusFunc      func(ctx context.Context, id string, newStatus string) (*model.Job, error)
	addAdditionalDataFunc func(ctx context.Context, id string, data string) (*model.Job, error)
	deleteJobFunc         func(ctx context.Context, id string) error
}

func (m *mockJobService) CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if m.createJobFunc != nil {
		return m.createJobFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockJobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	if m.getJobFunc != nil {
		return m.getJobFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockJobService) ListJobs(ctx context.Context, classification string, limit int) ([]*model.Job, error) {
	if m.listJobsFunc != nil {
		return m.listJobsFunc(ctx, classification, limit)
	}
	return nil, nil
}

func (m *mockJobService) SearchJobs(ctx context.Context, term string) ([]*model.Job, error) {
	if m.searchJobsFunc != nil {
		return m.searchJobsFunc(ctx, term)
	}
	return nil, nil
}

func (m *mockJobService) UpdateStatus(ctx context.Context, id string, newStatus string) (*model.Job, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, newStatus)
	}
	return nil, nil
}

func (m *mockJobService) AddAdditionalData(ctx context.Context, id string, data string) (*model.Job, error) {
	if m.addAdditionalDataFunc != nil {
		return m.addAdditionalDataFunc(ctx, id, data)
	}
	return nil, nil
}

func (m *mockJobService) DeleteJob(ctx context.Context, id string) error {
	if m.deleteJobFunc != nil {
		return m.deleteJobFunc(ctx, id)
	}
	return nil
}

// ============================================================================
// Job Endpoint Tests
// ============================================================================

func TestCreateJob_Returns201(t *testing.T) {
	t.Parallel()

	svc := &mockJobService{
		createJobFunc: func(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			return &model.Job{ID: "job:1", Title: req.Title, Status: model.JobStatusPending}, nil
		},
	}
	h := NewJobHandler(svc)

	body, _ := json.Marshal(model.CreateJobRequest{Title: "Fence repair", Description: "Fix fence"})
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateJob(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Links["self"] != "/api/jobs/job:1" {
		t.Errorf("unexpected self link %q", resp.Links["self"])
	}
}

func TestCreateJob_MalformedBody_Returns400(t *testing.T) {
	t.Parallel()

	h := NewJobHandler(&mockJobService{})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	h.CreateJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateJob_MissingTitle_Returns422(t *testing.T) {
	t.Parallel()

	svc := &mockJobService{
		createJobFunc: func(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
			return nil, service.ErrTitleRequired
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(`{"title":""}`))
	rec := httptest.NewRecorder()

	h.CreateJob(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem document, got %q", ct)
	}
}

func TestGetJob_Unknown_Returns404(t *testing.T) {
	t.Parallel()

	svc := &mockJobService{
		getJobFunc: func(ctx context.Context, id string) (*model.Job, error) {
			return nil, service.ErrJobNotFound
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job:missing", nil)
	req.SetPathValue("jobId", "job:missing")
	rec := httptest.NewRecorder()

	h.GetJob(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListJobs_PassesLimitAndClassification(t *testing.T) {
	t.Parallel()

	var gotClassification string
	var gotLimit int
	svc := &mockJobService{
		listJobsFunc: func(ctx context.Context, classification string, limit int) ([]*model.Job, error) {
			gotClassification = classification
			gotLimit = limit
			return []*model.Job{}, nil
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?limit=5&classification=active", nil)
	rec := httptest.NewRecorder()

	h.ListJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClassification != "active" || gotLimit != 5 {
		t.Errorf("expected classification=active limit=5, got %q %d", gotClassification, gotLimit)
	}
}

func TestListJobs_BadLimit_Returns400(t *testing.T) {
	t.Parallel()

	h := NewJobHandler(&mockJobService{})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?limit=lots", nil)
	rec := httptest.NewRecorder()

	h.ListJobs(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateStatus_DisallowedTransition_Returns422(t *testing.T) {
	t.Parallel()

	svc := &mockJobService{
		updateStatusFunc: func(ctx context.Context, id string, newStatus string) (*model.Job, error) {
			return nil, service.ErrInvalidTransition
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/jobs/job:1", bytes.NewBufferString(`{"status":"pending"}`))
	req.SetPathValue("jobId", "job:1")
	rec := httptest.NewRecorder()

	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestDeleteJob_WithEvents_Returns409(t *testing.T) {
	t.Parallel()

	svc := &mockJobService{
		deleteJobFunc: func(ctx context.Context, id string) error {
			return service.ErrJobHasEvents
		},
	}
	h := NewJobHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/jobs/job:1", nil)
	req.SetPathValue("jobId", "job:1")
	rec := httptest.NewRecorder()

	h.DeleteJob(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestDeleteJob_Returns204(t *testing.T) {
	t.Parallel()

	h := NewJobHandler(&mockJobService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/jobs/job:1", nil)
	req.SetPathValue("jobId", "job:1")
	rec := httptest.NewRecorder()

	h.DeleteJob(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}
