package logger

import (
	"fmt"

	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger: colored console output in DEV,
// JSON in PROD.
func NewLogger(conf *config.App) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level %q: %w", conf.LogLevel, err)
	}

	var cfg zap.Config
	if conf.Mode == config.AppModeDevelop {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = lvl

	return cfg.Build()
}
