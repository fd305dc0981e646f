package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/mail"
	"github.com/tradeline/jobtrack/api/internal/model"
)

// Labels the extraction prompt asks for and the parser matches on
const (
	labelTitle       = "job title"
	labelDescription = "job description"
	labelAddress     = "job address"
)

// MailTransport defines the interface to the inbox gateway
type MailTransport interface {
	ListMessages(ctx context.Context) ([]mail.Message, error)
	FetchMessage(ctx context.Context, id string) (*mail.FullMessage, error)
}

// Completer defines the interface to the AI completion service
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmailRepository defines the interface for email storage
type EmailRepository interface {
	Store(ctx context.Context, email *model.Email) error
	GetByID(ctx context.Context, id string) (*model.Email, error)
	List(ctx context.Context) ([]*model.Email, error)
	MarkProcessed(ctx context.Context, id string) error
}

// IngestionJobCreator is the slice of job storage the pipeline needs to
// create jobs from extracted fields.
type IngestionJobCreator interface {
	Create(ctx context.Context, job *model.Job) error
}

// IngestionService pulls inbox messages into the email store and extracts
// structured jobs from them on demand.
type IngestionService struct {
	transport MailTransport
	completer Completer
	emails    EmailRepository
	jobs      IngestionJobCreator
	logger    *slog.Logger

	// syncMu makes SyncInbox single-flight. A second concurrent run is
	// rejected, not queued.
	syncMu sync.Mutex
}

// IngestionServiceConfig holds configuration for the ingestion service
type IngestionServiceConfig struct {
	Transport MailTransport
	Completer Completer
	Emails    EmailRepository
	Jobs      IngestionJobCreator
	Logger    *slog.Logger
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(cfg IngestionServiceConfig) *IngestionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestionService{
		transport: cfg.Transport,
		completer: cfg.Completer,
		emails:    cfg.Emails,
		jobs:      cfg.Jobs,
		logger:    logger,
	}
}

// SyncInbox pulls all messages from the mail gateway into the email store.
// Messages seen before (same message id) are skipped, so repeated runs never
// store duplicates. A single message failing to fetch or store does not abort
// the batch; only an unreachable gateway does.
func (s *IngestionService) SyncInbox(ctx context.Context) (*model.SyncSummary, error) {
	if !s.syncMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	messages, err := s.transport.ListMessages(ctx)
	if err != nil {
		s.logger.Error("inbox listing failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMailUnavailable, err)
	}

	summary := &model.SyncSummary{}
	for _, msg := range messages {
		full, err := s.transport.FetchMessage(ctx, msg.ID)
		if err != nil {
			s.logger.Warn("message fetch failed", "message_id", msg.ID, "error", err)
			summary.Failed++
			continue
		}

		email := &model.Email{
			MessageID:  full.ID,
			Subject:    full.Subject,
			Sender:     full.Sender,
			Content:    full.Body,
			ReceivedOn: full.ReceivedOn,
		}

		err = s.emails.Store(ctx, email)
		switch {
		case errors.Is(err, database.ErrDuplicate):
			summary.Skipped++
		case err != nil:
			s.logger.Warn("message store failed", "message_id", msg.ID, "error", err)
			summary.Failed++
		default:
			summary.Stored++
		}
	}

	s.logger.Info("inbox sync finished",
		"stored", summary.Stored,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// ListEmails retrieves all stored emails, newest first
func (s *IngestionService) ListEmails(ctx context.Context) ([]*model.Email, error) {
	return s.emails.List(ctx)
}

// ExtractJob turns a stored email into a job via AI field extraction. Each
// email can be converted at most once; a parse failure leaves the email
// unprocessed so the extraction can be retried.
func (s *IngestionService) ExtractJob(ctx context.Context, emailID string) (*model.Job, error) {
	email, err := s.emails.GetByID(ctx, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, ErrEmailNotFound
	}
	if email.Processed {
		return nil, ErrEmailAlreadyProcessed
	}

	response, err := s.completer.Generate(ctx, extractionPrompt(email))
	if err != nil {
		s.logger.Error("AI completion failed", "email_id", emailID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	fields, err := parseExtraction(response)
	if err != nil {
		s.logger.Warn("AI output rejected", "email_id", emailID, "error", err)
		return nil, ErrExtractionUnparsable
	}

	job := &model.Job{
		Title:         fields.title,
		Description:   fields.description,
		Address:       fields.address,
		Status:        model.JobStatusPending,
		Source:        model.JobSourceEmail,
		SourceEmailID: &email.ID,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.emails.MarkProcessed(ctx, email.ID); err != nil {
		return nil, err
	}

	s.logger.Info("job extracted from email", "email_id", emailID, "job_id", job.ID)
	return job, nil
}

type extractedFields struct {
	title       string
	description string
	address     *string
}

func extractionPrompt(email *model.Email) string {
	var b strings.Builder
	b.WriteString("Extract the job details from the email below.\n")
	b.WriteString("Answer with exactly three lines, nothing else:\n")
	b.WriteString("Job Title: <the title>\n")
	b.WriteString("Job Description: <a short description of the work>\n")
	b.WriteString("Job Address: <the address, or leave empty if none is given>\n\n")
	b.WriteString("Subject: ")
	b.WriteString(email.Subject)
	b.WriteString("\nFrom: ")
	b.WriteString(email.Sender)
	b.WriteString("\n\n")
	b.WriteString(email.Content)
	return b.String()
}

// parseExtraction matches the three expected labels anywhere in the response,
// tolerating numbering, bullets and reordering. The completion service is
// untrusted free text: any missing label fails the whole extraction rather
// than producing a partially filled job.
func parseExtraction(response string) (*extractedFields, error) {
	found := map[string]string{}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.)-* \t")

		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(label))
		switch key {
		case labelTitle, labelDescription, labelAddress:
			if _, seen := found[key]; !seen {
				found[key] = strings.TrimSpace(value)
			}
		}
	}

	title, ok := found[labelTitle]
	if !ok || title == "" {
		return nil, fmt.Errorf("missing %q", labelTitle)
	}
	description, ok := found[labelDescription]
	if !ok {
		return nil, fmt.Errorf("missing %q", labelDescription)
	}
	addressValue, ok := found[labelAddress]
	if !ok {
		return nil, fmt.Errorf("missing %q", labelAddress)
	}

	fields := &extractedFields{title: title, description: description}
	if addressValue != "" {
		fields.address = &addressValue
	}
	return fields, nil
}
