package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// JobRepository defines the interface for job storage
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context, statuses []model.JobStatus, limit int) ([]*model.Job, error)
	Search(ctx context.Context, term string) ([]*model.Job, error)
	UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error)
	SetAdditionalData(ctx context.Context, id string, data string) (*model.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// JobEventChecker is the slice of event storage the job service needs for the
// delete guard.
type JobEventChecker interface {
	ListByJob(ctx context.Context, jobID string) ([]*model.Event, error)
}

// JobService handles job business logic
type JobService struct {
	repo   JobRepository
	events JobEventChecker

	// locks serializes read-modify-write cycles per job id so concurrent
	// status updates and annotations cannot interleave.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// JobServiceConfig holds configuration for the job service
type JobServiceConfig struct {
	Repo   JobRepository
	Events JobEventChecker
}

// NewJobService creates a new job service
func NewJobService(cfg JobServiceConfig) *JobService {
	return &JobService{
		repo:   cfg.Repo,
		events: cfg.Events,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *JobService) lockJob(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateJob creates a new manually submitted job. New jobs always start
// pending with created_on == updated_on.
func (s *JobService) CreateJob(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	job := &model.Job{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Address:     req.Address,
		Status:      model.JobStatusPending,
		Source:      model.JobSourceManual,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ListJobs retrieves jobs, newest first. classification may be empty (all
// jobs), "active" (pending or in-progress), or one of the stored statuses.
// limit <= 0 returns everything.
func (s *JobService) ListJobs(ctx context.Context, classification string, limit int) ([]*model.Job, error) {
	var statuses []model.JobStatus

	switch classification {
	case "":
	case "active":
		statuses = []model.JobStatus{model.JobStatusPending, model.JobStatusInProgress}
	default:
		status := model.JobStatus(classification)
		if !status.IsValid() {
			return nil, ErrInvalidClassification
		}
		statuses = []model.JobStatus{status}
	}

	return s.repo.List(ctx, statuses, limit)
}

// SearchJobs retrieves jobs whose title, description or address contains term,
// case-insensitively. An empty term returns all jobs.
func (s *JobService) SearchJobs(ctx context.Context, term string) ([]*model.Job, error) {
	return s.repo.Search(ctx, strings.ToLower(term))
}

// UpdateStatus moves a job to a new lifecycle status. The transition graph is
// pending -> in-progress -> completed with any state allowed to go inactive.
func (s *JobService) UpdateStatus(ctx context.Context, id string, newStatus string) (*model.Job, error) {
	status := model.JobStatus(newStatus)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	unlock := s.lockJob(id)
	defer unlock()

	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if !job.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrJobNotFound
	}
	return updated, nil
}

// AddAdditionalData sets the free-text annotation on a job
func (s *JobService) AddAdditionalData(ctx context.Context, id string, data string) (*model.Job, error) {
	unlock := s.lockJob(id)
	defer unlock()

	job, err := s.repo.SetAdditionalData(ctx, id, data)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// DeleteJob removes a job. Deletion is rejected while events still reference
// the job so the calendar sync never sees a dangling job id.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	unlock := s.lockJob(id)
	defer unlock()

	events, err := s.events.ListByJob(ctx, id)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		return ErrJobHasEvents
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrJobNotFound
	}
	return nil
}
