package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLogger(t *testing.T) {
	buf := NewBufferLogger()

	buf.Debug("probe %d failed", 40)
	buf.Info("started")
	buf.Warn("slow")
	buf.Error("broken")

	msgs := buf.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "debug", msgs[0].Level)
	assert.Equal(t, "probe 40 failed", msgs[0].Message)
	assert.Equal(t, "error", msgs[3].Level)

	assert.True(t, buf.HasLevel("warn"))
	assert.False(t, buf.HasLevel("fatal"))

	buf.Clear()
	assert.Empty(t, buf.Messages())
	assert.False(t, buf.HasLevel("debug"))
}

func TestNoop(t *testing.T) {
	// Must not panic; output is discarded
	l := Noop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("hello %s", "world")
	msgs := buf.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello world", msgs[0].Message)
}
