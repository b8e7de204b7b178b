package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("production defaults to info", func(t *testing.T) {
		logger, err := NewLogger("production", "")

		assert.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.DebugLevel))
		assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	})

	t.Run("level override", func(t *testing.T) {
		logger, err := NewLogger("production", "debug")

		assert.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("development", func(t *testing.T) {
		logger, err := NewLogger("", "warn")

		assert.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := NewLogger("", "chatty")

		assert.Error(t, err)
	})
}
