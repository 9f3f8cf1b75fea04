package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks every human-readable log line.
const Prefix = "🎨 "

// Config describes where and how to log.
type Config struct {
	Name   string
	Level  string // "debug", "json", "json:trace", ...
	Output io.Writer
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return New(Config{Name: name, Level: level, Output: output})
}

// New builds a logger from cfg. A level of "json" or "json:<level>" selects
// JSON output, as does RANKPACK_JSON_LOG=1.
func New(cfg Config) hclog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	jsonFormat, level := ParseLevel(cfg.Level)
	if os.Getenv("RANKPACK_JSON_LOG") == "1" {
		jsonFormat = true
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter(Prefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       cfg.Name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLevel splits "json:<level>" into its parts. Plain levels pass through.
func ParseLevel(level string) (jsonFormat bool, actual string) {
	level = strings.ToLower(strings.TrimSpace(level))
	if rest, ok := strings.CutPrefix(level, "json"); ok {
		actual = strings.TrimPrefix(rest, ":")
		if actual == "" {
			actual = "info"
		}
		return true, actual
	}
	return false, level
}

// ResolveLevel picks the level from the CLI flag, then RANKPACK_LOG_LEVEL,
// then "warn". The second value names where it came from.
func ResolveLevel(cliLevel string) (string, string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if envLevel := os.Getenv("RANKPACK_LOG_LEVEL"); envLevel != "" {
		return envLevel, "RANKPACK_LOG_LEVEL"
	}
	return "warn", "default" // Default to warn for production safety
}

// Output returns the log destination: RANKPACK_LOG_PATH when set and
// writable, fallback otherwise. The returned closer is never nil.
func Output(fallback io.Writer) (io.Writer, func() error) {
	if logPath := os.Getenv("RANKPACK_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			return file, file.Close
		}
	}
	return fallback, func() error { return nil }
}
