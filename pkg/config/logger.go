package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log configures the zap logger of the binaries.
type Log struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
	// Encoding is "json" or "console". Empty picks the preset default.
	Encoding string `yaml:"encoding" env:"ENCODING"`
}

// Logger builds a zap logger from the log settings.
func (l Log) Logger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}

	if raw := strings.TrimSpace(l.Level); raw != "" {
		level, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("config: log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	if encoding := strings.TrimSpace(l.Encoding); encoding != "" {
		cfg.Encoding = encoding
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
