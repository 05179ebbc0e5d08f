package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoverLogsAndSwallows(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	require.NotPanics(t, func() {
		defer Recover(logger, "dot tapped")
		panic("boom")
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Global error", entries[0].Message)
	assert.Equal(t, "dot tapped", entries[0].ContextMap()["handler"])
}

func TestRecoverWithoutPanicIsQuiet(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	func() {
		defer Recover(zap.New(core), "noop")
	}()
	assert.Zero(t, logs.Len())
}

func TestRecoverToleratesNilLogger(t *testing.T) {
	require.NotPanics(t, func() {
		defer Recover(nil, "nil logger")
		panic("boom")
	})
}

func TestNewHonoursVerbose(t *testing.T) {
	logger, err := New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
