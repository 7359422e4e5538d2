package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/ztx/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestNewLoggerDebugOverridesEnv(t *testing.T) {
	t.Setenv(LogLevelEnv, "error")

	logger := NewLogger(&config.RuntimeConfig{Debug: true})
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = NewLogger(&config.RuntimeConfig{})
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/manage_bundle.go", shortPath("/home/dev/ztx/internal/usecase/manage_bundle.go"))
	assert.Equal(t, "main.go", shortPath("/somewhere/else/main.go"))
}
