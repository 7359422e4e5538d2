package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/ztx/internal/domain/config"
)

// LogLevelEnv selects the log level (debug, info, warn, error)
const LogLevelEnv = "ZTX_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv(LogLevelEnv)),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
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

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(val string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(val)) {
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
	if idx := strings.Index(file, "ztx/"); idx != -1 {
		return file[idx+len("ztx/"):]
	}
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
