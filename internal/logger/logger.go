// Package logger provides the named, leveled logger used across the analytics bridge.
// Plain levels print a console line; debug prints one structured JSON object per call.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// EnvLogLevel overrides the level passed to any constructor.
const EnvLogLevel = "ANALYTICSBRIDGE_LOG_LEVEL"

// LogLevel represents the logging level.
type LogLevel string

const (
	LogLevelLog   LogLevel = "log"
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

// logLevels is ordered from least to most verbose; a logger prints every level whose
// index is <= its own.
var logLevels = []LogLevel{LogLevelLog, LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug}

const defaultLevelIndex = 3 // info

// Logger writes messages tagged with a component name.
type Logger struct {
	name   string
	level  int
	output io.Writer
}

// New creates a Logger at "info" that writes to stdout.
func New(name string) *Logger {
	return NewWithLevel(name, string(LogLevelInfo), os.Stdout)
}

// NewWithLevel creates a Logger with an explicit level and output. The
// ANALYTICSBRIDGE_LOG_LEVEL environment variable takes precedence over levelStr;
// unknown levels fall back to "info".
func NewWithLevel(name string, levelStr string, output io.Writer) *Logger {
	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" {
		levelStr = envLevel
	}
	return &Logger{
		name:   name,
		level:  levelIndex(levelStr),
		output: output,
	}
}

// Discard returns a Logger that never writes anything.
func Discard() *Logger {
	return &Logger{name: "discard", level: -1, output: io.Discard}
}

func levelIndex(levelStr string) int {
	for i, l := range logLevels {
		if string(l) == levelStr {
			return i
		}
	}
	return defaultLevelIndex
}

// Named returns a logger sharing this one's level and output under another name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, level: l.level, output: l.output}
}

// GetName returns the logger's name.
func (l *Logger) GetName() string {
	return l.name
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	for i, lv := range logLevels {
		if lv == level {
			return l.level >= i
		}
	}
	return false
}

func formattedDateTime() string {
	now := time.Now()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/int(time.Millisecond))
}

func (l *Logger) print(minLevel int, args []interface{}) {
	if l.level < minLevel {
		return
	}

	var message string
	switch len(args) {
	case 0:
	case 1:
		message = fmt.Sprintf("%v", args[0])
	default:
		message = fmt.Sprint(args...)
	}
	fmt.Fprintf(l.output, "[%s] [%s] %s\n", formattedDateTime(), l.name, message)
}

// Log writes at the "log" level.
func (l *Logger) Log(args ...interface{}) { l.print(0, args) }

// Error writes at the "error" level.
func (l *Logger) Error(args ...interface{}) { l.print(1, args) }

// Warn writes at the "warn" level.
func (l *Logger) Warn(args ...interface{}) { l.print(2, args) }

// Info writes at the "info" level.
func (l *Logger) Info(args ...interface{}) { l.print(3, args) }

// Debug writes a structured JSON line. A single arg is stored as-is under "args";
// several args are stored as a list.
func (l *Logger) Debug(message string, args ...interface{}) {
	if l.level < 4 {
		return
	}

	structuredLog := map[string]interface{}{
		"timestamp": time.Now(),
		"name":      l.name,
		"message":   message,
	}
	switch len(args) {
	case 0:
	case 1:
		structuredLog["args"] = args[0]
	default:
		structuredLog["args"] = args
	}

	jsonBytes, err := json.Marshal(structuredLog)
	if err != nil {
		fmt.Fprintf(l.output, "[%s] [%s] DEBUG: %s (JSON marshal error: %v)\n",
			formattedDateTime(), l.name, message, err)
		return
	}
	fmt.Fprintln(l.output, string(jsonBytes))
}

func (l *Logger) Logf(format string, args ...interface{})   { l.Log(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...interface{})  { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.Debug(fmt.Sprintf(format, args...)) }
