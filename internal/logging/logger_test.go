package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core)

	log.Info("connecting", "addr", "localhost:6379", "redis_password", "hunter2")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "localhost:6379", fields["addr"])
	assert.Equal(t, "[REDACTED]", fields["redis_password"])
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromCore(core).With("component", "relay")

	log.Debug("dropped")
	log.Warn("kept", "id", "abc")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "relay", entries[0].ContextMap()["component"])
	assert.Equal(t, "abc", entries[0].ContextMap()["id"])
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "dev", ""} {
		log, err := New(mode)
		require.NoError(t, err)
		assert.NotNil(t, log.SugaredLogger)
	}
}
