package model

import "time"

// Event represents a scheduled time window bound to a job, mirrored to the
// external calendar. Events are immutable after booking; only the calendar
// sync bookkeeping fields change.
type Event struct {
	ID    string    `json:"id"`
	JobID string    `json:"job_id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// CalendarEntryID is the external calendar entry this event maps to.
	// Set on first successful push; subsequent syncs update that entry
	// instead of inserting a duplicate.
	CalendarEntryID *string    `json:"calendar_entry_id,omitempty"`
	SyncedOn        *time.Time `json:"synced_on,omitempty"`
}

// CreateEventRequest is the payload for booking an event
type CreateEventRequest struct {
	JobID string    `json:"job_id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SyncReport reports the outcome of one calendar sync run
type SyncReport struct {
	Pushed   int      `json:"pushed"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Warnings []string `json:"warnings,omitempty"`
}
