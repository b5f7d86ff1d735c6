package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, log.InfoLevel, ParseLevel("chatty"))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidLevel("error"))
	assert.False(t, ValidLevel("loud"))
	assert.True(t, ValidFormat("json"))
	assert.True(t, ValidFormat("logfmt"))
	assert.False(t, ValidFormat("xml"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("task added", "id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"task added"`)
	assert.Contains(t, out, `"id":7`)
}
