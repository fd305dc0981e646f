package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger builds the process logger. With no log file configured it is a
// plain JSON handler on stdout. With a log file it fans out: JSON to the file
// for machine parsing, text to stdout for readability. The returned cleanup
// closes the file.
func SetupLogger(logFile string, level slog.Level) (*slog.Logger, func() error) {
	stdoutJSON := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if logFile == "" {
		return slog.New(stdoutJSON), func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("failed to open log file, using stdout only", "error", err, "file", logFile)
		return slog.New(stdoutJSON), func() error { return nil }
	}

	stdoutText := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	fileJSON := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})

	logger := slog.New(slogmulti.Fanout(stdoutText, fileJSON))
	return logger, func() error { return file.Close() }
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stdout, file io.Writer, level slog.Level) *slog.Logger {
	textHandler := slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})
	jsonHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(textHandler, jsonHandler))
}
