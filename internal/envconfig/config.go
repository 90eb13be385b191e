// Package envconfig reads hxasset settings from the environment.
//
//   - HXASSET_DEBUG: enable debug logging (bool, or a verbosity integer)
//   - HXASSET_LOG_FORMAT: "text" (default) or "json"
//   - HXASSET_KEY: key for signing or encrypting the loaded-asset manifest
//   - HXASSET_VERSION: version used for assets declared without one
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns the trimmed value of an environment variable, without
// surrounding quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the configured log level.
// Configurable via HXASSET_DEBUG. Default: info.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("HXASSET_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			if b {
				level = slog.LevelDebug
			}
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil && i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// Debug reports whether HXASSET_DEBUG enables debug logging.
func Debug() bool {
	return LogLevel() <= slog.LevelDebug
}

// String returns a getter for an environment variable.
func String(key string) func() string {
	return func() string {
		return Var(key)
	}
}

var (
	// LogFormat is "text" or "json". Configurable via HXASSET_LOG_FORMAT.
	LogFormat = String("HXASSET_LOG_FORMAT")

	// DefaultVersion applies to assets declared without a version.
	// Configurable via HXASSET_VERSION.
	DefaultVersion = String("HXASSET_VERSION")
)

// Key returns the manifest key, or nil when HXASSET_KEY is unset.
func Key() []byte {
	if s := Var("HXASSET_KEY"); s != "" {
		return []byte(s)
	}
	return nil
}

// EnvVar describes one setting for help output.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"HXASSET_DEBUG":      {"HXASSET_DEBUG", LogLevel(), "Show additional debug information (e.g. HXASSET_DEBUG=1)"},
		"HXASSET_LOG_FORMAT": {"HXASSET_LOG_FORMAT", LogFormat(), "Log output format: text or json"},
		"HXASSET_KEY":        {"HXASSET_KEY", Key() != nil, "Key used to sign the loaded-asset manifest"},
		"HXASSET_VERSION":    {"HXASSET_VERSION", DefaultVersion(), "Version for assets declared without one"},
	}
}
