package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradeline/jobtrack/api/internal/ai"
	"github.com/tradeline/jobtrack/api/internal/calendar"
	"github.com/tradeline/jobtrack/api/internal/config"
	"github.com/tradeline/jobtrack/api/internal/database"
	"github.com/tradeline/jobtrack/api/internal/handler"
	"github.com/tradeline/jobtrack/api/internal/jobs"
	"github.com/tradeline/jobtrack/api/internal/mail"
	"github.com/tradeline/jobtrack/api/internal/middleware"
	"github.com/tradeline/jobtrack/api/internal/repository"
	"github.com/tradeline/jobtrack/api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger, closeLog := config.SetupLogger(cfg.Server.LogFile, slog.LevelInfo)
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	// Validate configuration; missing external credentials are fatal here,
	// never a per-request failure
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize external clients
	aiModel, err := ai.NewModel(cfg.AI)
	if err != nil {
		slog.Error("failed to initialize AI model", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("AI model ready",
		slog.String("provider", cfg.AI.Provider),
		slog.String("model", aiModel.Model()),
	)

	mailClient := mail.NewClient(mail.Config{
		BaseURL:  cfg.Mail.BaseURL,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Timeout:  cfg.Mail.Timeout,
	})

	calendarClient := calendar.NewClient(calendar.Config{
		BaseURL:    cfg.Calendar.BaseURL,
		APIKey:     cfg.Calendar.APIKey,
		CalendarID: cfg.Calendar.CalendarID,
		Timeout:    cfg.Calendar.Timeout,
	})

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	eventRepo := repository.NewEventRepository(db)
	emailRepo := repository.NewEmailRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	jobService := service.NewJobService(service.JobServiceConfig{
		Repo:   jobRepo,
		Events: eventRepo,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		Repo: eventRepo,
		Jobs: jobRepo,
	})

	ingestionService := service.NewIngestionService(service.IngestionServiceConfig{
		Transport: mailClient,
		Completer: aiModel,
		Emails:    emailRepo,
		Jobs:      jobRepo,
		Logger:    logger,
	})

	calendarService := service.NewCalendarService(service.CalendarServiceConfig{
		Client: calendarClient,
		Events: eventRepo,
		Jobs:   jobRepo,
		Logger: logger,
	})

	userService := service.NewUserService(service.UserServiceConfig{
		Repo: userRepo,
	})

	// Optional background inbox sync
	if cfg.Mail.SyncInterval > 0 {
		inboxSyncer := jobs.NewInboxSyncer(ingestionService, cfg.Mail.SyncInterval, logger)
		inboxSyncer.Start()
		defer inboxSyncer.Stop()
	}

	// Initialize handlers
	jobHandler := handler.NewJobHandler(jobService)
	eventHandler := handler.NewEventHandler(eventService)
	emailHandler := handler.NewEmailHandler(ingestionService)
	syncHandler := handler.NewSyncHandler(calendarService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Job endpoints
	mux.HandleFunc("GET /api/jobs", jobHandler.ListJobs)
	mux.HandleFunc("POST /api/jobs", jobHandler.CreateJob)
	mux.HandleFunc("GET /api/jobs/search", jobHandler.SearchJobs)
	mux.HandleFunc("GET /api/jobs/{jobId}", jobHandler.GetJob)
	mux.HandleFunc("PUT /api/jobs/{jobId}", jobHandler.UpdateStatus)
	mux.HandleFunc("PATCH /api/jobs/{jobId}", jobHandler.AddAdditionalData)
	mux.HandleFunc("DELETE /api/jobs/{jobId}", jobHandler.DeleteJob)

	// Event endpoints
	mux.HandleFunc("GET /api/events", eventHandler.ListEvents)
	mux.HandleFunc("POST /api/events", eventHandler.CreateEvent)
	mux.HandleFunc("GET /api/events/{eventId}", eventHandler.GetEvent)

	// Email ingestion endpoints
	mux.HandleFunc("GET /api/emails", emailHandler.ListEmails)
	mux.HandleFunc("POST /api/sync-emails", emailHandler.SyncEmails)
	mux.HandleFunc("POST /api/create-job-from-email/{emailId}", emailHandler.CreateJobFromEmail)

	// Calendar sync endpoint
	mux.HandleFunc("POST /api/sync-calendar", syncHandler.SyncCalendar)

	// Profile endpoints
	mux.HandleFunc("GET /api/user", userHandler.GetUser)
	mux.HandleFunc("PUT /api/user", userHandler.UpdateUser)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
