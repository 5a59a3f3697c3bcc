package log

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	Info("hello from the editor")
	assert.Contains(t, buf.String(), "hello from the editor")

	buf.Reset()
	Warnf("buffer %s is dirty", "a.txt")
	assert.Contains(t, buf.String(), "buffer a.txt is dirty")
}

func TestDebugLevelGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	SetDebug(false)
	Debug("invisible")
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	SetDebug(false)
}

func TestLogWithFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	LogWithFields(F("file", "a.py"), F("mode", "COMMAND")).Info("executed")

	out := buf.String()
	assert.Contains(t, out, "file=a.py")
	assert.Contains(t, out, "mode=COMMAND")
	assert.Contains(t, out, "executed")
}
