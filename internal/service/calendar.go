package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tradeline/jobtrack/api/internal/calendar"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// CalendarClient defines the interface to the external calendar service
type CalendarClient interface {
	Ping(ctx context.Context) error
	InsertEntry(ctx context.Context, entry *calendar.Entry) (string, error)
	UpdateEntry(ctx context.Context, entryID string, entry *calendar.Entry) error
}

// CalendarJobReader is the slice of job storage the sync engine needs to
// resolve the job an event belongs to.
type CalendarJobReader interface {
	GetByID(ctx context.Context, id string) (*model.Job, error)
}

// CalendarService pushes job events to the external calendar, idempotently.
type CalendarService struct {
	client CalendarClient
	events EventRepository
	jobs   CalendarJobReader
	logger *slog.Logger

	// syncMu makes SyncToCalendar single-flight
	syncMu sync.Mutex
}

// CalendarServiceConfig holds configuration for the calendar service
type CalendarServiceConfig struct {
	Client CalendarClient
	Events EventRepository
	Jobs   CalendarJobReader
	Logger *slog.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(cfg CalendarServiceConfig) *CalendarService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarService{
		client: cfg.Client,
		events: cfg.Events,
		jobs:   cfg.Jobs,
		logger: logger,
	}
}

// SyncToCalendar pushes every stored event to the external calendar. Events
// already pushed (they carry a calendar entry id) are updated in place, so
// re-running the sync never duplicates entries. Per-event failures are
// collected into the report; only an unreachable calendar service aborts the
// run, and then before any entry is touched.
func (s *CalendarService) SyncToCalendar(ctx context.Context) (*model.SyncReport, error) {
	if !s.syncMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	if err := s.client.Ping(ctx); err != nil {
		s.logger.Error("calendar service unreachable", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.SyncReport{}
	for _, event := range events {
		s.syncEvent(ctx, event, report)
	}

	s.logger.Info("calendar sync finished",
		"pushed", report.Pushed,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *CalendarService) syncEvent(ctx context.Context, event *model.Event, report *model.SyncReport) {
	job, err := s.jobs.GetByID(ctx, event.JobID)
	if err != nil {
		s.logger.Warn("job lookup failed during sync", "event_id", event.ID, "error", err)
		report.Failed++
		return
	}
	if job == nil {
		report.Skipped++
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("event %s references missing job %s", event.ID, event.JobID))
		return
	}

	entry := buildEntry(job, event)

	if event.CalendarEntryID == nil {
		entryID, err := s.client.InsertEntry(ctx, entry)
		if err != nil {
			s.logger.Warn("calendar insert failed", "event_id", event.ID, "error", err)
			report.Failed++
			return
		}
		if err := s.events.MarkSynced(ctx, event.ID, entryID); err != nil {
			s.logger.Error("failed to record calendar entry id", "event_id", event.ID, "error", err)
			report.Failed++
			return
		}
		report.Pushed++
		return
	}

	if err := s.client.UpdateEntry(ctx, *event.CalendarEntryID, entry); err != nil {
		s.logger.Warn("calendar update failed", "event_id", event.ID, "error", err)
		report.Failed++
		return
	}
	if err := s.events.MarkSynced(ctx, event.ID, *event.CalendarEntryID); err != nil {
		s.logger.Error("failed to record sync time", "event_id", event.ID, "error", err)
		report.Failed++
		return
	}
	report.Updated++
}

func buildEntry(job *model.Job, event *model.Event) *calendar.Entry {
	description := job.Description
	if job.Address != nil {
		description += "\nAddress: " + *job.Address
	}
	return &calendar.Entry{
		Summary:     job.Title,
		Description: description,
		Start:       calendar.NewEntryTime(event.Start),
		End:         calendar.NewEntryTime(event.End),
	}
}
