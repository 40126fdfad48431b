package infrastructure

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line should be valid JSON: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func newTestFileLogger(t *testing.T) (*FileLoggerAdapter, string) {
	logPath := filepath.Join(t.TempDir(), "weather.log")
	logger, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })
	return logger, logPath
}

func TestFileLoggerAdapter_NewFileLoggerAdapter(t *testing.T) {
	t.Run("empty_path", func(t *testing.T) {
		logger, err := NewFileLoggerAdapter("")
		assert.Nil(t, logger)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "log file path cannot be empty")
	})

	t.Run("nested_path", func(t *testing.T) {
		nestedPath := filepath.Join(t.TempDir(), "deep", "nested", "weather.log")

		logger, err := NewFileLoggerAdapter(nestedPath)
		require.NoError(t, err)
		defer logger.Close()

		assert.DirExists(t, filepath.Dir(nestedPath))
		assert.FileExists(t, nestedPath)
	})
}

func TestFileLoggerAdapter_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		log   func(l *FileLoggerAdapter, msg string, fields ...ports.Field)
	}{
		{"DEBUG", (*FileLoggerAdapter).Debug},
		{"INFO", (*FileLoggerAdapter).Info},
		{"WARN", (*FileLoggerAdapter).Warn},
		{"ERROR", (*FileLoggerAdapter).Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, logPath := newTestFileLogger(t)

			tt.log(logger, "Weather API request", ports.F("city", "London"), ports.F("duration_ms", 5000))

			entries := readLogLines(t, logPath)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, "Weather API request", entries[0]["message"])
			assert.Equal(t, "London", entries[0]["city"])
			assert.Equal(t, float64(5000), entries[0]["duration_ms"])

			timestamp, ok := entries[0]["timestamp"].(string)
			require.True(t, ok)
			_, err := time.Parse(time.RFC3339, timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestFileLoggerAdapter_ErrorFieldsAreStrings(t *testing.T) {
	logger, logPath := newTestFileLogger(t)

	logger.Error("Weather API request failed", ports.F("error", stderrors.New("connection refused")))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0]["error"])
}

func TestFileLoggerAdapter_ReservedKeysWin(t *testing.T) {
	logger, logPath := newTestFileLogger(t)
	logger.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }

	logger.Info("real message", ports.F("message", "shadow"), ports.F("level", "shadow"))

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "real message", entries[0]["message"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "2026-10-14T09:30:00Z", entries[0]["timestamp"])
}

func TestFileLoggerAdapter_ConcurrentLogging(t *testing.T) {
	logger, logPath := newTestFileLogger(t)

	numGoroutines := 10
	messagesPerGoroutine := 5

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				logger.Info(fmt.Sprintf("Message from goroutine %d", goroutineID),
					ports.F("goroutine_id", goroutineID),
					ports.F("message_id", j))
			}
		}(i)
	}
	wg.Wait()

	entries := readLogLines(t, logPath)
	assert.Len(t, entries, numGoroutines*messagesPerGoroutine)
	for _, entry := range entries {
		assert.Contains(t, entry, "goroutine_id")
		assert.Contains(t, entry, "message_id")
	}
}

func TestFileLoggerAdapter_AppendsAcrossInstances(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")

	first, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	first.Info("First message")
	require.NoError(t, first.Close())

	second, err := NewFileLoggerAdapter(logPath)
	require.NoError(t, err)
	second.Info("Second message")
	require.NoError(t, second.Close())

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 2)
	assert.Equal(t, "First message", entries[0]["message"])
	assert.Equal(t, "Second message", entries[1]["message"])
}

func TestFileLoggerAdapter_UnmarshalableField(t *testing.T) {
	logger, logPath := newTestFileLogger(t)

	logger.Info("Test message", ports.F("channel", make(chan int)))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "failed to marshal log entry")
}

func TestFileLoggerAdapter_WritesAfterCloseAreDropped(t *testing.T) {
	logger, logPath := newTestFileLogger(t)

	logger.Info("kept")
	require.NoError(t, logger.Close())
	logger.Info("dropped")
	assert.NoError(t, logger.Close())

	entries := readLogLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["message"])
}

func TestFileLoggerAdapter_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	logger, logPath := newTestFileLogger(t)
	logger.Info("Test message")

	fileInfo, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), fileInfo.Mode().Perm())
}

func BenchmarkFileLoggerAdapter_Info(b *testing.B) {
	logger, err := NewFileLoggerAdapter(filepath.Join(b.TempDir(), "benchmark.log"))
	require.NoError(b, err)
	defer logger.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Info("Benchmark message",
				ports.F("provider", "openweathermap"),
				ports.F("city", "London"),
				ports.F("temperature", 15.5))
		}
	})
}
