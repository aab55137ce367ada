package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestCreateLogger_Levels(t *testing.T) {
	tests := []struct {
		level    LogLevel
		contains []string
		excludes []string
	}{
		{level: LogLevelDebug, contains: []string{"debug message", "info message", "warn message"}},
		{level: LogLevelInfo, contains: []string{"info message", "warn message"}, excludes: []string{"debug message"}},
		{level: LogLevelWarn, contains: []string{"warn message"}, excludes: []string{"debug message", "info message"}},
		{level: LogLevelError, excludes: []string{"debug message", "info message", "warn message"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer

			logger, closeFn, err := NewLoggerFactory().WithConsole(&buf, false).CreateLogger(tt.level, LogFormatConsole, "")
			if err != nil {
				t.Fatalf("CreateLogger() unexpected error: %v", err)
			}

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")
			checkError(t, closeFn(), false)

			for _, want := range tt.contains {
				checkStringContains(t, buf.String(), want)
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(buf.String(), unwanted) {
					t.Errorf("Expected %q to be filtered at level %s", unwanted, tt.level)
				}
			}
		})
	}
}

func TestCreateLogger_Structured(t *testing.T) {
	var buf bytes.Buffer

	logger, _, err := NewLoggerFactory().WithConsole(&buf, false).CreateLogger(LogLevelInfo, LogFormatStructured, "")
	if err != nil {
		t.Fatalf("CreateLogger() unexpected error: %v", err)
	}

	logger.Info("pair migrated", zap.String("source", "src/a"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}

	if entry["msg"] != "pair migrated" || entry["source"] != "src/a" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestCreateLogger_RunLog(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "migration_20240506_070809.log")

	logger, closeFn, err := NewLoggerFactory().WithConsole(&buf, false).CreateLogger(LogLevelInfo, LogFormatConsole, path)
	if err != nil {
		t.Fatalf("CreateLogger() unexpected error: %v", err)
	}

	logger.Info("migration complete")
	checkError(t, closeFn(), false)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read run log: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("Expected a JSON run log entry, got %q: %v", data, err)
	}

	checkStringEqual(t, entry["msg"].(string), "migration complete")
	checkStringContains(t, buf.String(), "migration complete")
}

func TestCreateLogger_RunLogCreatedOnFirstEntry(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	path := filepath.Join(dir, "migration_20240506_070809.log")

	logger, closeFn, err := NewLoggerFactory().WithConsole(&bytes.Buffer{}, false).CreateLogger(LogLevelInfo, LogFormatConsole, path)
	if err != nil {
		t.Fatalf("CreateLogger() unexpected error: %v", err)
	}

	logger.Debug("below the configured level")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected no run log directory before the first entry, got %v", err)
	}

	logger.Info("first entry")
	checkError(t, closeFn(), false)

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected the run log after the first entry: %v", err)
	}
}

func TestCreateLogger_Invalid(t *testing.T) {
	factory := NewLoggerFactory()

	_, _, err := factory.CreateLogger("verbose", LogFormatConsole, "")
	checkError(t, err, true)

	_, _, err = factory.CreateLogger(LogLevelInfo, "xml", "")
	checkError(t, err, true)
}

func TestLoggerContext(t *testing.T) {
	if Logger(context.Background()) == nil {
		t.Fatal("Expected a no-op logger when none is set")
	}

	logger := zap.NewExample()
	if got := Logger(WithLogger(context.Background(), logger)); got != logger {
		t.Error("Expected the stored logger to be returned")
	}
}
