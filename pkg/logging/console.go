package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ConsoleLogger implements Logger over an arbitrary writer, normally
// stderr, so log lines interleave with per-file disposition output.
type ConsoleLogger struct {
	writer io.Writer
	format Format
	level  Level
	fields Fields
	mu     *sync.Mutex
}

// NewConsoleLogger creates a logger writing to the given writer
func NewConsoleLogger(writer io.Writer, format Format, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer: writer,
		format: format,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Debug logs a debug message
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.level <= DebugLevel {
		l.log(DebugLevel, msg, nil, fields)
	}
}

// Info logs an info message
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.level <= InfoLevel {
		l.log(InfoLevel, msg, nil, fields)
	}
}

// Warn logs a warning message
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.level <= WarnLevel {
		l.log(WarnLevel, msg, nil, fields)
	}
}

// Error logs an error message
func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	if l.level <= ErrorLevel {
		l.log(ErrorLevel, msg, err, fields)
	}
}

// WithFields returns a logger with additional fields
func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	merged := mergeFields(l.fields, fields)
	return &ConsoleLogger{
		writer: l.writer,
		format: l.format,
		level:  l.level,
		fields: merged,
		mu:     l.mu,
	}
}

// Close flushes the logger (no-op for console output)
func (l *ConsoleLogger) Close() error {
	return nil
}

func (l *ConsoleLogger) log(level Level, msg string, err error, fields Fields) {
	line, formatErr := formatLine(l.format, level, msg, err, mergeFields(l.fields, fields))
	if formatErr != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(line)
}

// mergeFields combines base and extra fields, extra winning on conflict
func mergeFields(base, extra Fields) Fields {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// formatLine renders one log entry, newline included
func formatLine(format Format, level Level, msg string, err error, fields Fields) ([]byte, error) {
	if format == FormatJSON {
		entry := map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"level":     levelString(level),
			"message":   msg,
		}
		if err != nil {
			entry["error"] = err.Error()
		}
		for k, v := range fields {
			entry[k] = v
		}

		data, jsonErr := json.Marshal(entry)
		if jsonErr != nil {
			return nil, jsonErr
		}
		return append(data, '\n'), nil
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	line := fmt.Sprintf("%s [%s] %s", timestamp, levelString(level), msg)
	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}
	for k, v := range fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	return []byte(line + "\n"), nil
}
