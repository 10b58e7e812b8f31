package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Fields represents structured log fields
type Fields map[string]interface{}

type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = map[string]Level{
	"silent": LevelSilent,
	"error":  LevelError,
	"warn":   LevelWarn,
	"info":   LevelInfo,
	"debug":  LevelDebug,
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	output = log.New(os.Stderr, "", log.Ldate|log.Ltime)
)

// ParseLevel maps a name like "debug" to a Level.
func ParseLevel(name string) (Level, error) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return l, nil
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output.SetOutput(w)
}

func enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= l
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	if enabled(LevelInfo) {
		output.Printf("[INFO] %s %v", msg, formatFields(fields))
	}
}

// Error logs an error message with structured fields
func Error(msg string, err error, fields Fields) {
	if enabled(LevelError) {
		output.Printf("[ERROR] %s: %v %v", msg, err, formatFields(fields))
	}
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	if enabled(LevelWarn) {
		output.Printf("[WARN] %s %v", msg, formatFields(fields))
	}
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	if enabled(LevelDebug) {
		output.Printf("[DEBUG] %s %v", msg, formatFields(fields))
	}
}

func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
