// Package logging provides structured JSON logging with redaction of SRP
// secret material for the srpauth tooling.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

// Log severity levels.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format represents the output format for log entries.
type Format string

// Log output formats.
const (
	// FormatJSON outputs logs as JSON (default).
	FormatJSON Format = "json"
	// FormatHuman outputs logs in human-readable format.
	FormatHuman Format = "human"
)

var severities = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a configuration string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	l := Level(strings.ToLower(s))
	if _, ok := severities[l]; !ok {
		return LevelInfo
	}
	return l
}

// ParseFormat maps a configuration string to a Format, defaulting to JSON.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(s)) == FormatHuman {
		return FormatHuman
	}
	return FormatJSON
}

// Logger provides leveled, structured logging with secret redaction.
type Logger struct {
	level    Level
	format   Format
	redactor *Redactor
	stdout   io.Writer
	stderr   io.Writer
	mu       sync.Mutex
}

type entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a new Logger instance.
func New(level Level, format Format) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput sets custom output writers for testing.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = stdout
	l.stderr = stderr
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

func (l *Logger) log(level Level, msg string, fields map[string]any) {
	if severities[level] < severities[l.level] {
		return
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   msg,
		Fields:    l.redactor.RedactFields(fields),
	}

	var output string
	if l.format == FormatHuman {
		output = l.formatHuman(e)
	} else {
		output = l.formatJSON(e)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	writer := l.stdout
	if level == LevelError {
		writer = l.stderr
	}
	_, _ = writer.Write([]byte(output))
}

func (l *Logger) formatJSON(e entry) string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
	}
	return string(data) + "\n"
}

func (l *Logger) formatHuman(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", e.Timestamp, e.Level, e.Message)
	for k, v := range e.Fields {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteString("\n")
	return b.String()
}

func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return merged
}
