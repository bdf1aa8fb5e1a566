package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readLog returns the content of the single log file in dir
func readLog(t *testing.T, dir string) string {
	t.Helper()
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "modvar_"))

	content, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	return string(content)
}

// TestNewLogger tests creating a new logger
func TestNewLogger(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir, LevelInfo)
	require.NoError(t, err)
	defer logger.Close()

	assert.NotNil(t, logger.file)
	assert.Equal(t, tempDir, filepath.Dir(logger.Path()))
}

// TestNewLogger_InvalidPath tests creating logger with invalid path
func TestNewLogger_InvalidPath(t *testing.T) {
	logger, err := NewLogger("/proc/invalid/path/that/cannot/be/created", LevelInfo)

	assert.Error(t, err)
	assert.Nil(t, logger)
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger, err := newLogger(&console, "", LevelInfo)
	require.NoError(t, err)

	logger.Info("generated %d packets", 3)
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
	assert.Contains(t, console.String(), "[INFO] generated 3 packets")
}

// TestLogger_Levels tests that every level is tagged and carries the caller
func TestLogger_Levels(t *testing.T) {
	tempDir := t.TempDir()
	var console bytes.Buffer

	logger, err := newLogger(&console, tempDir, LevelTrace)
	require.NoError(t, err)

	logger.Error("an error message")
	logger.Warn("a warn message")
	logger.Info("an info message")
	logger.Debug("a debug message")
	logger.Trace("a trace message")
	require.NoError(t, logger.Close())

	content := readLog(t, tempDir)
	for _, want := range []string{
		"[ERROR] an error message",
		"[WARN] a warn message",
		"[INFO] an info message",
		"[DEBUG] a debug message",
		"[TRACE] a trace message",
		"logger_test.go:",
	} {
		assert.Contains(t, content, want)
	}
	assert.Equal(t, content, console.String())
}

// TestLogger_Verbosity tests that messages above the level are dropped
func TestLogger_Verbosity(t *testing.T) {
	var console bytes.Buffer
	logger, err := newLogger(&console, "", LevelWarn)
	require.NoError(t, err)

	logger.Error("kept error")
	logger.Warn("kept warn")
	logger.Info("dropped info")
	logger.Debug("dropped debug")

	out := console.String()
	assert.Contains(t, out, "kept error")
	assert.Contains(t, out, "kept warn")
	assert.NotContains(t, out, "dropped")

	console.Reset()
	silent, err := newLogger(&console, "", LevelCrit)
	require.NoError(t, err)
	silent.Error("nothing")
	assert.Empty(t, console.String())
}
