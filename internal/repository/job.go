package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// JobRepository handles job data access
type JobRepository struct {
	db database.Database
}

// NewJobRepository creates a new job repository
func NewJobRepository(db database.Database) *JobRepository {
	return &JobRepository{db: db}
}

// Create persists a new job. The id is assigned here so creation is a single
// round trip; status, source and timestamps must already be set by the caller.
func (r *JobRepository) Create(ctx context.Context, job *model.Job) error {
	key := uuid.NewString()
	query := `
		CREATE type::thing('job', $key) CONTENT {
			title: $title,
			description: $description,
			address: $address,
			status: $status,
			additional_data: $additional_data,
			source: $source,
			source_email_id: $source_email_id,
			created_on: time::now(),
			updated_on: time::now()
		} RETURN AFTER
	`

	vars := map[string]interface{}{
		"key":             key,
		"title":           job.Title,
		"description":     job.Description,
		"address":         job.Address,
		"status":          string(job.Status),
		"additional_data": job.AdditionalData,
		"source":          job.Source,
		"source_email_id": job.SourceEmailID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := parseJobResult(result)
	if err != nil {
		return err
	}

	job.ID = created.ID
	job.CreatedOn = created.CreatedOn
	job.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a job by ID. Returns nil when no record exists.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT * FROM type::thing('job', $key)`
	vars := map[string]interface{}{"key": recordKey(id, "job")}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseJobResult(result)
}

// List retrieves jobs ordered by creation time descending. An empty statuses
// slice means no status filter; limit <= 0 means no limit.
func (r *JobRepository) List(ctx context.Context, statuses []model.JobStatus, limit int) ([]*model.Job, error) {
	query := `SELECT * FROM job`
	vars := map[string]interface{}{}

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query += ` WHERE status IN $statuses`
		vars["statuses"] = values
	}

	query += ` ORDER BY created_on DESC`

	if limit > 0 {
		query += ` LIMIT $limit`
		vars["limit"] = limit
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseJobsResult(result)
}

// Search retrieves jobs whose title, description or address contains term,
// case-insensitively. An empty term matches every job.
func (r *JobRepository) Search(ctx context.Context, term string) ([]*model.Job, error) {
	query := `
		SELECT * FROM job
		WHERE string::contains(string::lowercase(title), $term)
			OR string::contains(string::lowercase(description), $term)
			OR (address != NONE AND string::contains(string::lowercase(address), $term))
	`
	vars := map[string]interface{}{"term": term}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseJobsResult(result)
}

// UpdateStatus sets the job status and bumps updated_on.
// Returns nil when no record exists.
func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error) {
	query := `
		UPDATE type::thing('job', $key) SET
			status = $status,
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"key":    recordKey(id, "job"),
		"status": string(status),
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseJobResult(result)
}

// SetAdditionalData sets the free-text annotation and bumps updated_on.
// Returns nil when no record exists.
func (r *JobRepository) SetAdditionalData(ctx context.Context, id string, data string) (*model.Job, error) {
	query := `
		UPDATE type::thing('job', $key) SET
			additional_data = $data,
			updated_on = time::now()
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"key":  recordKey(id, "job"),
		"data": data,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseJobResult(result)
}

// Delete removes a job record. Returns whether a record existed.
func (r *JobRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE type::thing('job', $key) RETURN BEFORE`
	vars := map[string]interface{}{"key": recordKey(id, "job")}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	rows, ok := extractQueryResults(result)
	return ok && len(rows) > 0, nil
}

// parseJobResult parses a single job from a query result
func parseJobResult(result interface{}) (*model.Job, error) {
	jobMap, ok := result.(map[string]interface{})
	if !ok {
		if rows, ok := extractQueryResults(result); ok && len(rows) > 0 {
			if m, ok := rows[0].(map[string]interface{}); ok {
				return parseJobMap(m)
			}
		}
		return nil, fmt.Errorf("unexpected job result format: %T", result)
	}
	return parseJobMap(jobMap)
}

// parseJobsResult parses a list of jobs from a query result
func parseJobsResult(result interface{}) ([]*model.Job, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Job{}, nil
	}

	jobs := make([]*model.Job, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		job, err := parseJobMap(m)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func parseJobMap(m map[string]interface{}) (*model.Job, error) {
	id := extractRecordID(m["id"])
	if id == "" {
		return nil, fmt.Errorf("job record missing id")
	}

	return &model.Job{
		ID:             id,
		Title:          getString(m, "title"),
		Description:    getString(m, "description"),
		Address:        getStringPtr(m, "address"),
		Status:         model.JobStatus(getString(m, "status")),
		AdditionalData: getStringPtr(m, "additional_data"),
		Source:         getString(m, "source"),
		SourceEmailID:  getStringPtr(m, "source_email_id"),
		CreatedOn:      getTime(m, "created_on"),
		UpdatedOn:      getTime(m, "updated_on"),
	}, nil
}
