package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, l Level) *bytes.Buffer {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return buf
}

func TestLevelsFilter(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debug("hidden", nil)
	Info("hidden too", nil)
	Warn("shown", Fields{"b": 2, "a": 1})
	Error("failed", errors.New("boom"), nil)

	out := buf.String()
	assert := assert.New(t)
	assert.NotContains(out, "hidden")
	assert.Contains(out, "[WARN] shown a=1 b=2")
	assert.Contains(out, "[ERROR] failed: boom")
}

func TestSilent(t *testing.T) {
	buf := capture(t, LevelSilent)
	Error("nothing", errors.New("x"), nil)
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
