package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Logger writes timestamped hook run logs. One file per invocation, named
// after the source tool, kept under the data dir's logs/ directory.
type Logger struct {
	w         io.Writer
	file      *os.File
	startTime time.Time
}

// NewLogger creates a logger for a hook run of tool. When the log file cannot
// be created the logger falls back to stderr so a run is never silent.
func NewLogger(logsDir, tool string) *Logger {
	startTime := time.Now()
	filename := fmt.Sprintf("hook-%s-%s.log", tool, startTime.Format("2006-01-02-150405"))

	logger := &Logger{w: os.Stderr, startTime: startTime}
	if err := os.MkdirAll(logsDir, 0755); err == nil {
		if file, err := os.Create(filepath.Join(logsDir, filename)); err == nil {
			logger.file = file
			logger.w = file
		}
	}
	if logger.file == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log file in %s, logging to stderr\n", logsDir)
	}

	logger.Log("=== %s hook started at %s ===", tool, startTime.Format(time.RFC3339))
	return logger
}

// Close writes the trailer and closes the log file, if any.
func (l *Logger) Close() error {
	l.Log("=== hook finished at %s (duration: %v) ===", time.Now().Format(time.RFC3339), time.Since(l.startTime))
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Log writes a log entry.
func (l *Logger) Log(format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "[%s] %s\n", timestamp, msg)
}
