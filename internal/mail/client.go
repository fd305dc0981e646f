// Package mail implements the client for the mail gateway that fronts the
// service inbox. The gateway exposes two calls: list pending messages and
// fetch one message's full content. Ingestion correlates on Message.ID, so
// the gateway's message id must be stable across calls.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Message is a summary entry from the inbox listing.
type Message struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	ReceivedOn time.Time `json:"received_on"`
}

// FullMessage is one fetched message with its body.
type FullMessage struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedOn time.Time `json:"received_on"`
}

// Client talks to the mail gateway over HTTP.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// Config holds mail gateway connection settings.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// NewClient creates a mail gateway client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: timeout},
	}
}

// ListMessages returns summaries of all messages currently in the inbox.
func (c *Client) ListMessages(ctx context.Context) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := c.get(ctx, "/messages", &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// FetchMessage retrieves the full content of one message by gateway id.
func (c *Client) FetchMessage(ctx context.Context, id string) (*FullMessage, error) {
	var out FullMessage
	if err := c.get(ctx, "/messages/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mail gateway: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail gateway: HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode mail gateway response: %w", err)
	}
	return nil
}
