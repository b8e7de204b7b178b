package app

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. APP_ENV=production switches to
// sampled JSON output; LOG_LEVEL overrides the level in either mode.
func NewLogger(env, level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}

	return cfg.Build()
}
