package service

import (
	"context"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListByJob(ctx context.Context, jobID string) ([]*model.Event, error)
	MarkSynced(ctx context.Context, id string, calendarEntryID string) error
}

// EventJobChecker is the slice of job storage the event service needs to
// verify the referenced job exists.
type EventJobChecker interface {
	GetByID(ctx context.Context, id string) (*model.Job, error)
}

// EventService handles event business logic
type EventService struct {
	repo EventRepository
	jobs EventJobChecker
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	Repo EventRepository
	Jobs EventJobChecker
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		repo: cfg.Repo,
		jobs: cfg.Jobs,
	}
}

// CreateEvent books a time window against an existing job. Nothing is
// persisted when validation fails.
func (s *EventService) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	event := &model.Event{
		JobID: job.ID,
		Start: req.Start,
		End:   req.End,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListEvents retrieves all events ordered by start time
func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}
