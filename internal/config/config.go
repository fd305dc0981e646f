package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// AI provider names accepted in AI_PROVIDER
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mail     MailConfig
	AI       AIConfig
	Calendar CalendarConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
	LogFile        string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// MailConfig holds mail gateway settings for inbox ingestion
type MailConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration

	// SyncInterval enables the background inbox syncer when > 0.
	// Zero leaves ingestion purely on-demand.
	SyncInterval time.Duration
}

// AIConfig holds completion service settings for email extraction
type AIConfig struct {
	Provider   string
	Model      string
	APIKey     string
	OllamaHost string
}

// CalendarConfig holds external calendar service settings
type CalendarConfig struct {
	BaseURL    string
	APIKey     string
	CalendarID string
	Timeout    time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			LogFile:        getEnv("SERVER_LOG_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "jobtrack"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Mail: MailConfig{
			BaseURL:  getEnv("MAIL_BASE_URL", ""),
			Username: getEnv("MAIL_USER", ""),
			Password: getEnv("MAIL_PASSWORD", ""),
			Timeout:  getDurationEnv("MAIL_TIMEOUT", 30*time.Second),

			SyncInterval: getDurationEnv("MAIL_SYNC_INTERVAL", 0),
		},
		AI: AIConfig{
			Provider:   getEnv("AI_PROVIDER", ProviderOpenAI),
			Model:      getEnv("AI_MODEL", "gpt-4o-mini"),
			APIKey:     getEnv("AI_API_KEY", ""),
			OllamaHost: getEnv("OLLAMA_HOST", "http://localhost:11434"),
		},
		Calendar: CalendarConfig{
			BaseURL:    getEnv("CALENDAR_BASE_URL", ""),
			APIKey:     getEnv("CALENDAR_API_KEY", ""),
			CalendarID: getEnv("CALENDAR_ID", "primary"),
			Timeout:    getDurationEnv("CALENDAR_TIMEOUT", 30*time.Second),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Mail validation
	if c.Mail.BaseURL == "" {
		errs = append(errs, errors.New("MAIL_BASE_URL is required"))
	}
	if c.Mail.Username == "" {
		errs = append(errs, errors.New("MAIL_USER is required"))
	}
	if c.Mail.Password == "" {
		errs = append(errs, errors.New("MAIL_PASSWORD is required"))
	}

	// AI validation
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic:
		if c.AI.APIKey == "" {
			errs = append(errs, fmt.Errorf("AI_API_KEY is required for provider '%s'", c.AI.Provider))
		}
	case ProviderOllama:
		if c.AI.OllamaHost == "" {
			errs = append(errs, errors.New("OLLAMA_HOST is required for provider 'ollama'"))
		}
	default:
		errs = append(errs, fmt.Errorf("AI_PROVIDER must be 'openai', 'anthropic', or 'ollama', got '%s'", c.AI.Provider))
	}
	if c.AI.Model == "" {
		errs = append(errs, errors.New("AI_MODEL is required"))
	}

	// Calendar validation
	if c.Calendar.BaseURL == "" {
		errs = append(errs, errors.New("CALENDAR_BASE_URL is required"))
	}
	if c.Calendar.APIKey == "" {
		errs = append(errs, errors.New("CALENDAR_API_KEY is required"))
	}
	if c.Calendar.CalendarID == "" {
		errs = append(errs, errors.New("CALENDAR_ID is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
