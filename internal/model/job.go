package model

import "time"

// JobStatus is the lifecycle state of a job
type JobStatus string

// Job status values. These are the only accepted statuses; anything else is
// rejected at the service layer.
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusInactive   JobStatus = "inactive"
)

// Job source values
const (
	JobSourceManual = "manual"
	JobSourceEmail  = "email"
)

// Job represents a unit of service work tracked through a status lifecycle
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Address        *string   `json:"address,omitempty"`
	Status         JobStatus `json:"status"`
	AdditionalData *string   `json:"additional_data,omitempty"`
	Source         string    `json:"source"`
	SourceEmailID  *string   `json:"source_email_id,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// IsValid reports whether s is one of the enumerated job statuses
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusInactive:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status graph permits moving from s to
// next. The graph is pending -> in-progress -> completed, with any state
// allowed to go inactive. Self-transitions are permitted.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s == next || next == JobStatusInactive {
		return true
	}
	switch s {
	case JobStatusPending:
		return next == JobStatusInProgress
	case JobStatusInProgress:
		return next == JobStatusCompleted
	default:
		return false
	}
}

// IsActive reports whether the job counts as active for query-time
// classification. Active is not a stored status; it is derived from
// pending and in-progress.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusPending || j.Status == JobStatusInProgress
}

// CreateJobRequest is the payload for creating a job manually
type CreateJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     *string `json:"address,omitempty"`
}

// UpdateJobStatusRequest is the payload for PUT /api/jobs/{jobId}
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// AddJobDataRequest is the payload for PATCH /api/jobs/{jobId}
type AddJobDataRequest struct {
	AdditionalData string `json:"additional_data"`
}
