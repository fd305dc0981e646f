package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// EmailRepository handles email data access
type EmailRepository struct {
	db database.Database
}

// NewEmailRepository creates a new email repository
func NewEmailRepository(db database.Database) *EmailRepository {
	return &EmailRepository{db: db}
}

// Store persists an email unless one with the same message id already exists.
// Returns database.ErrDuplicate when the message was stored before, which is
// what makes inbox sync re-runnable.
func (r *EmailRepository) Store(ctx context.Context, email *model.Email) error {
	existing, err := r.GetByMessageID(ctx, email.MessageID)
	if err != nil {
		return err
	}
	if existing != nil {
		return database.ErrDuplicate
	}

	key := uuid.NewString()
	query := `
		CREATE type::thing('email', $key) CONTENT {
			message_id: $message_id,
			subject: $subject,
			sender: $sender,
			content: $content,
			received_on: $received_on,
			processed: false,
			processed_on: NONE
		} RETURN AFTER
	`

	vars := map[string]interface{}{
		"key":         key,
		"message_id":  email.MessageID,
		"subject":     email.Subject,
		"sender":      email.Sender,
		"content":     email.Content,
		"received_on": email.ReceivedOn,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return database.ErrDuplicate
		}
		return err
	}

	created, err := parseEmailResult(result)
	if err != nil {
		return err
	}

	email.ID = created.ID
	email.Processed = false
	return nil
}

// GetByID retrieves an email by ID. Returns nil when no record exists.
func (r *EmailRepository) GetByID(ctx context.Context, id string) (*model.Email, error) {
	query := `SELECT * FROM type::thing('email', $key)`
	vars := map[string]interface{}{"key": recordKey(id, "email")}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEmailResult(result)
}

// GetByMessageID retrieves an email by its transport message id.
// Returns nil when no record exists.
func (r *EmailRepository) GetByMessageID(ctx context.Context, messageID string) (*model.Email, error) {
	query := `SELECT * FROM email WHERE message_id = $message_id LIMIT 1`
	vars := map[string]interface{}{"message_id": messageID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEmailResult(result)
}

// List retrieves all emails ordered by received time descending
func (r *EmailRepository) List(ctx context.Context) ([]*model.Email, error) {
	query := `SELECT * FROM email ORDER BY received_on DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return parseEmailsResult(result)
}

// MarkProcessed flags an email as consumed by job extraction
func (r *EmailRepository) MarkProcessed(ctx context.Context, id string) error {
	query := `
		UPDATE type::thing('email', $key) SET
			processed = true,
			processed_on = time::now()
	`
	vars := map[string]interface{}{"key": recordKey(id, "email")}

	return r.db.Execute(ctx, query, vars)
}

// parseEmailResult parses a single email from a query result
func parseEmailResult(result interface{}) (*model.Email, error) {
	emailMap, ok := result.(map[string]interface{})
	if !ok {
		if rows, ok := extractQueryResults(result); ok && len(rows) > 0 {
			if m, ok := rows[0].(map[string]interface{}); ok {
				return parseEmailMap(m)
			}
		}
		return nil, fmt.Errorf("unexpected email result format: %T", result)
	}
	return parseEmailMap(emailMap)
}

// parseEmailsResult parses a list of emails from a query result
func parseEmailsResult(result interface{}) ([]*model.Email, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Email{}, nil
	}

	emails := make([]*model.Email, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		email, err := parseEmailMap(m)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func parseEmailMap(m map[string]interface{}) (*model.Email, error) {
	id := extractRecordID(m["id"])
	if id == "" {
		return nil, fmt.Errorf("email record missing id")
	}

	return &model.Email{
		ID:          id,
		MessageID:   getString(m, "message_id"),
		Subject:     getString(m, "subject"),
		Sender:      getString(m, "sender"),
		Content:     getString(m, "content"),
		ReceivedOn:  getTime(m, "received_on"),
		Processed:   getBool(m, "processed"),
		ProcessedOn: getTimePtr(m, "processed_on"),
	}, nil
}
