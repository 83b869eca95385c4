package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat parses a log format string, defaulting to text
func ParseFormat(s string) Format {
	if s == "json" {
		return FormatJSON
	}
	return FormatText
}

// sink is shared between a logger and the loggers derived from it
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// StreamLogger writes one line per entry to a writer
type StreamLogger struct {
	sink   *sink
	format Format
	level  Level
	fields Fields
	now    func() time.Time
}

// NewStreamLogger creates a logger writing to w. Close does not close w.
func NewStreamLogger(w io.Writer, format Format, level Level) *StreamLogger {
	return &StreamLogger{
		sink:   &sink{w: w},
		format: format,
		level:  level,
		now:    time.Now,
	}
}

// NewFileLogger opens path in append mode and logs to it
func NewFileLogger(path string, format Format, level Level) (*StreamLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewStreamLogger(file, format, level)
	l.sink.closer = file
	return l, nil
}

func (l *StreamLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

func (l *StreamLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

func (l *StreamLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

func (l *StreamLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger with additional fields
func (l *StreamLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	derived := *l
	derived.fields = merged
	return &derived
}

// Close closes the underlying file, if the logger owns one
func (l *StreamLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.closer == nil {
		return nil
	}
	err := l.sink.closer.Close()
	l.sink.closer = nil
	l.sink.w = io.Discard
	return err
}

func (l *StreamLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.level {
		return
	}

	all := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		all[k] = v
	}
	for k, v := range fields {
		all[k] = v
	}

	var line []byte
	if l.format == FormatJSON {
		line = l.formatJSON(level, msg, err, all)
	} else {
		line = l.formatText(level, msg, err, all)
	}
	if line == nil {
		return
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.w.Write(line)
}

func (l *StreamLogger) formatJSON(level Level, msg string, err error, fields Fields) []byte {
	entry := map[string]interface{}{
		"timestamp": l.now().UTC().Format(time.RFC3339),
		"level":     level.String(),
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
		return nil
	}
	return append(data, '\n')
}

func (l *StreamLogger) formatText(level Level, msg string, err error, fields Fields) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", l.now().UTC().Format("2006-01-02T15:04:05.000Z"), level, msg)

	if err != nil {
		fmt.Fprintf(&b, " error=%q", err.Error())
	}

	// Sorted keys keep lines stable across runs
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String())
}
