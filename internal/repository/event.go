package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// EventRepository handles event data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new event. Job existence is the service's responsibility.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	key := uuid.NewString()
	query := `
		CREATE type::thing('event', $key) CONTENT {
			job_id: $job_id,
			start: $start,
			end: $end,
			calendar_entry_id: NONE,
			synced_on: NONE
		} RETURN AFTER
	`

	vars := map[string]interface{}{
		"key":    key,
		"job_id": event.JobID,
		"start":  event.Start,
		"end":    event.End,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := parseEventResult(result)
	if err != nil {
		return err
	}

	event.ID = created.ID
	return nil
}

// GetByID retrieves an event by ID. Returns nil when no record exists.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::thing('event', $key)`
	vars := map[string]interface{}{"key": recordKey(id, "event")}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventResult(result)
}

// List retrieves all events ordered by start time ascending
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY start ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseEventsResult(result)
}

// ListByJob retrieves all events bound to a job
func (r *EventRepository) ListByJob(ctx context.Context, jobID string) ([]*model.Event, error) {
	query := `SELECT * FROM event WHERE job_id = $job_id`
	vars := map[string]interface{}{"job_id": jobID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseEventsResult(result)
}

// MarkSynced records the external calendar entry id and the sync time for an
// event after a successful push.
func (r *EventRepository) MarkSynced(ctx context.Context, id string, calendarEntryID string) error {
	query := `
		UPDATE type::thing('event', $key) SET
			calendar_entry_id = $entry_id,
			synced_on = time::now()
	`
	vars := map[string]interface{}{
		"key":      recordKey(id, "event"),
		"entry_id": calendarEntryID,
	}

	return r.db.Execute(ctx, query, vars)
}

// parseEventResult parses a single event from a query result
func parseEventResult(result interface{}) (*model.Event, error) {
	eventMap, ok := result.(map[string]interface{})
	if !ok {
		if rows, ok := extractQueryResults(result); ok && len(rows) > 0 {
			if m, ok := rows[0].(map[string]interface{}); ok {
				return parseEventMap(m)
			}
		}
		return nil, fmt.Errorf("unexpected event result format: %T", result)
	}
	return parseEventMap(eventMap)
}

// parseEventsResult parses a list of events from a query result
func parseEventsResult(result interface{}) ([]*model.Event, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Event{}, nil
	}

	events := make([]*model.Event, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		event, err := parseEventMap(m)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func parseEventMap(m map[string]interface{}) (*model.Event, error) {
	id := extractRecordID(m["id"])
	if id == "" {
		return nil, fmt.Errorf("event record missing id")
	}

	return &model.Event{
		ID:              id,
		JobID:           getString(m, "job_id"),
		Start:           getTime(m, "start"),
		End:             getTime(m, "end"),
		CalendarEntryID: getStringPtr(m, "calendar_entry_id"),
		SyncedOn:        getTimePtr(m, "synced_on"),
	}, nil
}
