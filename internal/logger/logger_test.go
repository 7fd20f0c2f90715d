package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	// nil falls back to a no-op logger
	assert.NotPanics(t, func() { WithFields(nil, zap.String("baz", "qux")).Info("another log") })
}

func TestDocument(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	zap.New(core).Info("skipped", Document(3, " jane.txt ")...)

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, int64(3), ctx[FieldIndex])
	assert.Equal(t, "jane.txt", ctx[FieldFile])
	assert.Len(t, Document(0, ""), 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll...", Truncate("  héllo world ", 4))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "", Truncate("anything", 0))
}
