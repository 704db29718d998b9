package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Silent_WhenNotVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetVerbose(false)
	t.Cleanup(func() { SetOutput(os.Stderr); SetVerbose(false) })

	Debug("debug %d", 1)
	Info("info")
	Warn("warn")
	Section("section")

	assert.Empty(t, buf.String())
}

func TestLogger_Verbose(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	SetVerbose(true)
	t.Cleanup(func() { SetOutput(os.Stderr); SetVerbose(false) })

	Debug("debug %d", 1)
	Info("info message")
	Warn("warn message")
	Section("Pipeline")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] debug 1")
	assert.Contains(t, out, "[INFO] info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "=== Pipeline ===")
}

func TestIsVerbose(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
