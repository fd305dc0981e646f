package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_NoFile_JSONToStdout(t *testing.T) {
	logger, cleanup := SetupLogger("", slog.LevelInfo)
	defer func() { _ = cleanup() }()

	require.NotNil(t, logger)
	assert.NoError(t, cleanup())
}

func TestSetupLoggerWithWriters_FansOutToBoth(t *testing.T) {
	var stdout, file bytes.Buffer

	logger := SetupLoggerWithWriters(&stdout, &file, slog.LevelInfo)
	logger.Info("sync finished", "stored", 3)

	assert.Contains(t, stdout.String(), "sync finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "sync finished", entry["msg"])
	assert.EqualValues(t, 3, entry["stored"])
}

func TestSetupLoggerWithWriters_RespectsLevel(t *testing.T) {
	var stdout, file bytes.Buffer

	logger := SetupLoggerWithWriters(&stdout, &file, slog.LevelWarn)
	logger.Info("suppressed")
	logger.Warn("kept")

	assert.False(t, strings.Contains(stdout.String(), "suppressed"))
	assert.Contains(t, stdout.String(), "kept")
}
