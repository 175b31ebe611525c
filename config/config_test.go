package config_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagos-go/pagos/config"
)

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PAGOS_PRIMARY__DRIVER", "stripe")
	t.Setenv("PAGOS_LOGGER__LEVEL", "debug")
	t.Setenv("PAGOS_GATEWAY__PRIVATE_KEY", "sk_test_123")
	t.Setenv("PAGOS_GATEWAY__TEST", "true")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "stripe", cfg.Primary.Driver)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "stripe", cfg.Gateway.Driver())
	assert.Equal(t, "sk_test_123", cfg.Gateway["private_key"])
}

func TestLoadConfig_DefaultsToBogus(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "bogus", cfg.Primary.Driver)
	assert.Equal(t, "bogus", cfg.Gateway.Driver())
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	logger := config.LoggerConfig{Level: "warn"}.NewLogger()
	require.NotNil(t, logger)

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
