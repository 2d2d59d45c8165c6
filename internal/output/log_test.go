package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	setupLogging(&buf, cfg)
	t.Cleanup(func() { SetupLogging(LogConfig{}) })
	return &buf
}

func TestSetupLogging_TimestampDefaultOn(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Info("test")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, buf.String(), "default output should start with a timestamp")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(t, LogConfig{Timestamps: BoolPtr(false)})
	Info("hello")
	out := strings.TrimSpace(buf.String())
	assert.Contains(t, out, "hello")
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, out, "output should not start with a timestamp")
}

func TestSetupLogging_VerboseForcesTimestampsOn(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	Debug("verbose-msg")
	out := buf.String()
	assert.Contains(t, out, "verbose-msg", "debug message should appear in verbose mode")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, out, "verbose should force timestamps on")
}

func TestSetupLogging_Levels(t *testing.T) {
	captureLog(t, LogConfig{Verbose: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	buf := captureLog(t, LogConfig{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestSchemaLogger(t *testing.T) {
	captureLog(t, LogConfig{Verbose: true})

	l := SchemaLogger("show")
	assert.Contains(t, l.GetPrefix(), "show")
	assert.Equal(t, log.DebugLevel, l.GetLevel(), "child logger inherits the level")

	assert.Same(t, logger, SchemaLogger(""))
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
