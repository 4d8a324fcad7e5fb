package logger

import (
	"context"
	"path/filepath"
	"testing"

	"gophvault/internal/app/client/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		env            string
		expectedLevel  slog.Level
		expectedPretty bool
	}{
		{
			name:           "local environment",
			env:            config.EnvLocal,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: true,
		},
		{
			name:           "dev environment",
			env:            config.EnvDev,
			expectedLevel:  slog.LevelDebug,
			expectedPretty: false,
		},
		{
			name:           "prod environment",
			env:            config.EnvProd,
			expectedLevel:  slog.LevelInfo,
			expectedPretty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= 0, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.expectedLevel <= slog.LevelInfo, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		cfg       config.Config
		wantDebug bool
		wantWarn  bool
	}{
		{"level overrides env", config.Config{Env: config.EnvProd, LogLevel: "debug"}, true, true},
		{"warn level", config.Config{Env: config.EnvLocal, LogLevel: "warn"}, false, true},
		{"unknown level falls back to info", config.Config{Env: config.EnvDev, LogLevel: "trace"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := FromConfig(&tt.cfg)
			assert.Equal(t, tt.wantDebug, log.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantWarn, log.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	log := FromConfig(&config.Config{Env: config.EnvProd, LogLevel: "info", LogFile: path})
	log.Info("hello", slog.String("k", "v"))

	assert.FileExists(t, path)
}
