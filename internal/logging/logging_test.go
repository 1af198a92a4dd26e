package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/secure-string-parameter/internal/config"
)

func TestNewWithOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("handler", config.Config{LogLevel: hclog.Info, LogJSON: true}, &buf)

	logger.Debug("hidden")
	logger.Info("parameter stored", "name", "/app/secret")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "parameter stored", line["@message"])
	assert.Equal(t, "handler", line["@module"])
	assert.Equal(t, "/app/secret", line["name"])
}

func TestNewWithOutputText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("ssparam", config.Config{LogLevel: hclog.Debug}, &buf)

	logger.Debug("value encrypted", "bytes", 3)
	assert.Contains(t, buf.String(), "[DEBUG] ssparam: value encrypted: bytes=3")
}
