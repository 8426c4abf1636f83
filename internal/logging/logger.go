package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a logger writing to w, stderr when w is nil
func NewLogger(cfg *config.RuntimeConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return newLogger(w, cfg)
}

func newLogger(w io.Writer, cfg *config.RuntimeConfig) *slog.Logger {
	level := parseLevel(os.Getenv("TVK_LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if cfg != nil && cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(val string) slog.Level {
	switch strings.ToLower(val) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	// Try to make paths relative to project root
	if idx := strings.Index(file, "tvk-deploy/"); idx != -1 {
		return file[idx+len("tvk-deploy/"):]
	}
	// Otherwise, relative to this module's checkout
	_, f, _, _ := runtime.Caller(0)
	if idx := strings.LastIndex(f, "/internal/"); idx != -1 {
		if strings.HasPrefix(file, f[:idx+1]) {
			return file[idx+1:]
		}
	}
	// Last resort: just the filename
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
