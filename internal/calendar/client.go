// Package calendar implements the client for the external calendar service.
// Entries are keyed by the id the service returns on insert; updates address
// that id, which is what makes repeated pushes idempotent.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Entry is a calendar entry as the external service understands it.
type Entry struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       EntryTime `json:"start"`
	End         EntryTime `json:"end"`
}

// EntryTime carries a timestamp with an explicit time zone designator.
type EntryTime struct {
	DateTime time.Time `json:"date_time"`
	TimeZone string    `json:"time_zone"`
}

// NewEntryTime builds an EntryTime in UTC.
func NewEntryTime(t time.Time) EntryTime {
	return EntryTime{DateTime: t.UTC(), TimeZone: "UTC"}
}

// Client talks to the calendar service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	calendarID string
	http       *http.Client
}

// Config holds calendar service connection settings.
type Config struct {
	BaseURL    string
	APIKey     string
	CalendarID string
	Timeout    time.Duration
}

// NewClient creates a calendar service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		calendarID: cfg.CalendarID,
		http:       &http.Client{Timeout: timeout},
	}
}

// Ping verifies the calendar service is reachable and the credentials are
// accepted, without touching any entries.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.calendarPath(""), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calendar service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("calendar service: HTTP %d", resp.StatusCode)
	}
	return nil
}

// InsertEntry creates a new calendar entry and returns its external id.
func (c *Client) InsertEntry(ctx context.Context, entry *Entry) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.send(ctx, http.MethodPost, c.calendarPath("/entries"), entry, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("calendar service: insert returned no entry id")
	}
	return out.ID, nil
}

// UpdateEntry replaces the entry with the given external id.
func (c *Client) UpdateEntry(ctx context.Context, entryID string, entry *Entry) error {
	path := c.calendarPath("/entries/" + url.PathEscape(entryID))
	return c.send(ctx, http.MethodPut, path, entry, nil)
}

func (c *Client) calendarPath(suffix string) string {
	return c.baseURL + "/calendars/" + url.PathEscape(c.calendarID) + suffix
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) send(ctx context.Context, method, path string, body, v interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal calendar entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calendar service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("calendar service: HTTP %d for %s %s", resp.StatusCode, method, path)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decode calendar response: %w", err)
		}
	}
	return nil
}
