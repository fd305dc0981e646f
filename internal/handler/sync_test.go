package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradeline/jobtrack/api/internal/model"
	"github.com/tradeline/jobtrack/api/internal/service"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockCalendarService struct {
	syncToCalendarFunc func(ctx context.Context) (*model.SyncReport, error)
}

func (m *mockCalendarService) SyncToCalendar(ctx context.Context) (*model.SyncReport, error) {
	if m.syncToCalendarFunc != nil {
		return m.syncToCalendarFunc(ctx)
	}
	return &model.SyncReport{}, nil
}

type mockIngestionService struct {
	syncInboxFunc  func(ctx context.Context) (*model.SyncSummary, error)
	listEmailsFunc func(ctx context.Context) ([]*model.Email, error)
	extractJobFunc func(ctx context.Context, emailID string) (*model.Job, error)
}

func (m *mockIngestionService) SyncInbox(ctx context.Context) (*model.SyncSummary, error) {
	if m.syncInboxFunc != nil {
		return m.syncInboxFunc(ctx)
	}
	return &model.SyncSummary{}, nil
}

func (m *mockIngestionService) ListEmails(ctx context.Context) ([]*model.Email, error) {
	if m.listEmailsFunc != nil {
		return m.listEmailsFunc(ctx)
	}
	return nil, nil
}

func (m *mockIngestionService) ExtractJob(ctx context.Context, emailID string) (*model.Job, error) {
	if m.extractJobFunc != nil {
		return m.extractJobFunc(ctx, emailID)
	}
	return nil, nil
}

// ============================================================================
// Calendar Sync Tests
// ============================================================================

func TestSyncCalendar_Returns200WithReport(t *testing.T) {
	t.Parallel()

	svc := &mockCalendarService{
		syncToCalendarFunc: func(ctx context.Context) (*model.SyncReport, error) {
			return &model.SyncReport{Pushed: 2, Updated: 1}, nil
		},
	}
	h := NewSyncHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-calendar", nil)
	rec := httptest.NewRecorder()

	h.SyncCalendar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data model.SyncReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Pushed != 2 || resp.Data.Updated != 1 {
		t.Errorf("unexpected report: %+v", resp.Data)
	}
}

func TestSyncCalendar_ServiceDown_Returns502(t *testing.T) {
	t.Parallel()

	svc := &mockCalendarService{
		syncToCalendarFunc: func(ctx context.Context) (*model.SyncReport, error) {
			return nil, service.ErrCalendarUnavailable
		},
	}
	h := NewSyncHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-calendar", nil)
	rec := httptest.NewRecorder()

	h.SyncCalendar(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestSyncCalendar_AlreadyRunning_Returns409(t *testing.T) {
	t.Parallel()

	svc := &mockCalendarService{
		syncToCalendarFunc: func(ctx context.Context) (*model.SyncReport, error) {
			return nil, service.ErrSyncInProgress
		},
	}
	h := NewSyncHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-calendar", nil)
	rec := httptest.NewRecorder()

	h.SyncCalendar(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

// ============================================================================
// Email Sync / Extraction Tests
// ============================================================================

func TestSyncEmails_TransportDown_Returns502(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		syncInboxFunc: func(ctx context.Context) (*model.SyncSummary, error) {
			return nil, service.ErrMailUnavailable
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-emails", nil)
	rec := httptest.NewRecorder()

	h.SyncEmails(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestSyncEmails_Returns200WithSummary(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		syncInboxFunc: func(ctx context.Context) (*model.SyncSummary, error) {
			return &model.SyncSummary{Stored: 3, Skipped: 1}, nil
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/sync-emails", nil)
	rec := httptest.NewRecorder()

	h.SyncEmails(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data model.SyncSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Stored != 3 || resp.Data.Skipped != 1 {
		t.Errorf("unexpected summary: %+v", resp.Data)
	}
}

func TestCreateJobFromEmail_Returns201(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		extractJobFunc: func(ctx context.Context, emailID string) (*model.Job, error) {
			return &model.Job{ID: "job:1", Source: model.JobSourceEmail}, nil
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/create-job-from-email/email:1", nil)
	req.SetPathValue("emailId", "email:1")
	rec := httptest.NewRecorder()

	h.CreateJobFromEmail(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCreateJobFromEmail_UnknownEmail_Returns404(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		extractJobFunc: func(ctx context.Context, emailID string) (*model.Job, error) {
			return nil, service.ErrEmailNotFound
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/create-job-from-email/email:missing", nil)
	req.SetPathValue("emailId", "email:missing")
	rec := httptest.NewRecorder()

	h.CreateJobFromEmail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateJobFromEmail_AlreadyProcessed_Returns409(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		extractJobFunc: func(ctx context.Context, emailID string) (*model.Job, error) {
			return nil, service.ErrEmailAlreadyProcessed
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/create-job-from-email/email:1", nil)
	req.SetPathValue("emailId", "email:1")
	rec := httptest.NewRecorder()

	h.CreateJobFromEmail(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateJobFromEmail_Unparsable_Returns422(t *testing.T) {
	t.Parallel()

	svc := &mockIngestionService{
		extractJobFunc: func(ctx context.Context, emailID string) (*model.Job, error) {
			return nil, service.ErrExtractionUnparsable
		},
	}
	h := NewEmailHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/create-job-from-email/email:1", nil)
	req.SetPathValue("emailId", "email:1")
	rec := httptest.NewRecorder()

	h.CreateJobFromEmail(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
