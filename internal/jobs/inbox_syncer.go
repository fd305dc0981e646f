package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tradeline/jobtrack/api/internal/model"
	"github.com/tradeline/jobtrack/api/internal/service"
)

// InboxSource is the slice of the ingestion pipeline the syncer drives
type InboxSource interface {
	SyncInbox(ctx context.Context) (*model.SyncSummary, error)
}

// InboxSyncer periodically pulls the inbox into the email store, so new
// messages show up without anyone hitting the sync endpoint.
type InboxSyncer struct {
	ingestion InboxSource
	interval  time.Duration
	logger    *slog.Logger
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewInboxSyncer creates a new inbox syncer job
func NewInboxSyncer(ingestion InboxSource, interval time.Duration, logger *slog.Logger) *InboxSyncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &InboxSyncer{
		ingestion: ingestion,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic sync loop
func (s *InboxSyncer) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	s.logger.Info("inbox syncer started", "interval", s.interval)
}

// Stop gracefully stops the sync loop
func (s *InboxSyncer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("inbox syncer stopped")
}

// IsRunning returns whether the syncer is running
func (s *InboxSyncer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *InboxSyncer) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.syncOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncOnce()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InboxSyncer) syncOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.ingestion.SyncInbox(ctx)
	if err != nil {
		// A manually triggered sync may hold the lock; that run covers us.
		if errors.Is(err, service.ErrSyncInProgress) {
			return
		}
		s.logger.Warn("scheduled inbox sync failed", "error", err)
		return
	}

	if summary.Stored > 0 || summary.Failed > 0 {
		s.logger.Info("scheduled inbox sync",
			"stored", summary.Stored,
			"skipped", summary.Skipped,
			"failed", summary.Failed,
		)
	}
}
