// Package config manages application configuration for the JobTrack API.
//
// Configuration is loaded from environment variables and validated once at
// startup; a missing mail, AI, or calendar credential is a fatal
// configuration error, never a per-request failure.
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS)
//   - DatabaseConfig: SurrealDB connection settings
//   - MailConfig: mail gateway credentials for inbox ingestion
//   - AIConfig: completion provider, model, and API key for extraction
//   - CalendarConfig: calendar service credentials for push sync
//
// # Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
package config
