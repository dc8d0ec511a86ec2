// Package logging configures slog for thermal-ca. The driver logs run
// boundaries at debug and one record per generation at trace.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug. Simulate emits a record at this
// level for every generation, so it is only useful for short runs.
const LevelTrace = slog.LevelDebug - 4

var levels = map[string]slog.Level{
	"":        slog.LevelInfo,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
	"debug":   slog.LevelDebug,
	"trace":   LevelTrace,
}

// ParseLevel looks up a --log-level value, ignoring case. Anything it does not
// know is info; config validation rejects those names before this runs.
func ParseLevel(s string) slog.Level {
	if lvl, ok := levels[strings.ToLower(s)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// ValidLevel reports whether s is a known level name. Empty means info.
func ValidLevel(s string) bool {
	_, ok := levels[strings.ToLower(s)]
	return ok
}

// NewLogger returns a text logger on w at the named level. Trace records are
// labelled TRACE instead of slog's "DEBUG-4".
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: labelTrace,
	}))
}

func labelTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// Discard is the logger runs use when the caller passes none.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
