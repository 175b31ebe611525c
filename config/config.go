// Package config loads application settings for the pagos CLI from the
// environment (with .env support). Library users do not need it: driver
// credentials go straight into pagos.Config maps.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"

	"github.com/pagos-go/pagos"
)

type Config struct {
	Primary Primary      `koanf:"primary"`
	Logger  LoggerConfig `koanf:"logger"`

	// Gateway holds the driver-specific settings verbatim; each driver
	// validates its own required keys.
	Gateway pagos.Config `koanf:"-"`
}

type Primary struct {
	Driver string `koanf:"driver" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func (c LoggerConfig) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// LoadConfig reads PAGOS_-prefixed environment variables; double
// underscores separate nesting levels, so PAGOS_GATEWAY__PRIVATE_KEY
// becomes the driver setting private_key.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("PAGOS_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "PAGOS_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}
	if mainConfig.Primary.Driver == "" {
		mainConfig.Primary.Driver = "bogus"
	}
	mainConfig.Gateway = pagos.Config(k.Cut("gateway").Raw())
	mainConfig.Gateway["driver"] = mainConfig.Primary.Driver

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
