package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/iliyamo/entry-exit-logbook/internal/config"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		log, err := New(config.LoggingConfig{Level: "debug", Format: format})
		require.NoError(t, err, format)
		assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel), format)
	}
}

func TestNew_Level(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))

	_, err = New(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
