package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"binPack/internal/logging"
)

func TestNew(t *testing.T) {
	for _, format := range []string{logging.FormatJSON, logging.FormatConsole, ""} {
		log, err := logging.New("warn", format)
		require.NoError(t, err, format)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	_, err := logging.New("loud", logging.FormatJSON)
	require.Error(t, err)

	_, err = logging.New("info", "xml")
	require.Error(t, err)
}
