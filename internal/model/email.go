package model

import "time"

// Email is a captured inbox message, optionally convertible into a job via
// AI extraction.
type Email struct {
	ID string `json:"id"`

	// MessageID is the transport-level message identifier. Ingestion dedupes
	// on it so re-running the inbox sync never stores the same message twice.
	MessageID string `json:"message_id"`

	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	ReceivedOn time.Time `json:"received_on"`

	// Processed tracks whether extraction already produced a job from this
	// message. A processed email cannot be extracted again.
	Processed   bool       `json:"processed"`
	ProcessedOn *time.Time `json:"processed_on,omitempty"`
}

// SyncSummary reports the outcome of one inbox sync run
type SyncSummary struct {
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
