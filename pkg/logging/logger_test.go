package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "text format with info level",
			config: Config{Level: slog.LevelInfo, Format: FormatText},
			want:   "level=INFO",
		},
		{
			name:   "JSON format with debug level",
			config: Config{Level: slog.LevelDebug, Format: FormatJSON},
			want:   `"level":"INFO"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.config.Output = &buf

			logger := NewLogger(tt.config)
			logger.Info("test message")

			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), "time=")
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		debugShown bool
		infoShown  bool
		warnShown  bool
	}{
		{name: "default logger", level: slog.LevelInfo, infoShown: true, warnShown: true},
		{name: "verbose logger", level: slog.LevelDebug, debugShown: true, infoShown: true, warnShown: true},
		{name: "quiet logger", level: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(Config{Level: tt.level, Format: FormatText, Output: &buf})

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			logger.Error("error message")

			output := buf.String()
			assert.Equal(t, tt.debugShown, strings.Contains(output, "debug message"))
			assert.Equal(t, tt.infoShown, strings.Contains(output, "info message"))
			assert.Equal(t, tt.warnShown, strings.Contains(output, "warn message"))
			assert.Contains(t, output, "error message")
		})
	}
}

func TestSetLevelAppliesToDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})
	child := logger.With("component", "summary")

	child.Debug("hidden")
	logger.SetLevel(slog.LevelDebug)
	child.Debug("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown component=summary")
}

func TestLoggerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.WithGroup("search").Info("pass", "depth", 2)

	assert.Contains(t, buf.String(), "search.depth=2")
}

func TestComponentLoggers(t *testing.T) {
	tests := []struct {
		name     string
		create   func() Logger
		expected string
	}{
		{
			name:     "NewComponentLogger",
			create:   func() Logger { return NewComponentLogger("testcomp") },
			expected: "component=testcomp",
		},
		{
			name:     "NewOperationLogger",
			create:   func() Logger { return NewOperationLogger("comp", "op") },
			expected: "operation=op",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			originalLogger := globalLogger
			SetGlobalLogger(NewLogger(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf}))
			defer SetGlobalLogger(originalLogger)

			tt.create().Info("test message")

			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestGlobalLogger(t *testing.T) {
	originalLogger := globalLogger
	defer SetGlobalLogger(originalLogger)

	var buf bytes.Buffer
	testLogger := NewLogger(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})
	SetGlobalLogger(testLogger)

	assert.Same(t, testLogger, GetGlobalLogger())

	Info("test info message")
	Debug("test debug message")
	assert.Contains(t, buf.String(), "test info message")
	assert.NotContains(t, buf.String(), "test debug message")
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	LogError(logger, "summarize failed", errors.New("boom"), "file", "data.json")

	output := buf.String()
	assert.Contains(t, output, "summarize failed")
	assert.Contains(t, output, "error=boom")
	assert.Contains(t, output, "file=data.json")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG", slog.LevelError))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning ", slog.LevelError))
	assert.Equal(t, slog.LevelError, ParseLevel("bogus", slog.LevelError))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", slog.LevelInfo))
}

func TestNewFileLoggerFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treepeek-debug.log")
	t.Setenv(EnvDebugFile, path)
	t.Setenv(EnvDebugLevel, "debug")

	logger := NewFileLoggerFromEnv("unused.log")
	logger.Debug("written to file", "passes", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "passes=3")
}

func TestGetDebugFilePath_Default(t *testing.T) {
	t.Setenv(EnvDebugFile, "")

	assert.Equal(t, filepath.Join(os.TempDir(), "treepeek.log"), GetDebugFilePath("treepeek.log"))
}
