package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Verbosity levels, matching the log.verbosity config key.
const (
	LevelCrit = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Logger wraps the standard logger with file output
type Logger struct {
	*log.Logger
	file  *os.File
	level int
}

// NewLogger creates a new logger that writes to both console and a
// timestamped file in logDir. An empty logDir logs to the console only.
func NewLogger(logDir string, level int) (*Logger, error) {
	return newLogger(os.Stdout, logDir, level)
}

func newLogger(console io.Writer, logDir string, level int) (*Logger, error) {
	if logDir == "" {
		return &Logger{Logger: log.New(console, "", log.LstdFlags), level: level}, nil
	}
	// Ensure log directory exists
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFilePath := filepath.Join(logDir, fmt.Sprintf("modvar_%s.log", timestamp))

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		Logger: log.New(io.MultiWriter(console, file), "", log.LstdFlags),
		file:   file,
		level:  level,
	}, nil
}

// Path returns the log file path, or "" for a console-only logger.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// logWithCaller logs a message with caller information
func (l *Logger) logWithCaller(level int, tag, format string, v ...interface{}) {
	if level > l.level {
		return
	}
	message := fmt.Sprintf(format, v...)
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		l.Printf("%-20s [%s] %s", "", tag, message)
		return
	}
	// 20 characters for file:line keeps the levels aligned
	l.Printf("%-20s [%s] %s", fmt.Sprintf("%s:%d:", filepath.Base(file), line), tag, message)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logWithCaller(LevelInfo, "INFO", format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logWithCaller(LevelError, "ERROR", format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logWithCaller(LevelWarn, "WARN", format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logWithCaller(LevelDebug, "DEBUG", format, v...)
}

// Trace logs a trace message
func (l *Logger) Trace(format string, v ...interface{}) {
	l.logWithCaller(LevelTrace, "TRACE", format, v...)
}
