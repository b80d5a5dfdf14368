package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "taketora/internal/log"
)

func TestLogger_WritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := applog.New(&buf).With("cms")
	l.Error("cms.fetch.fail", errors.New("boom"), map[string]any{"slug": "x"})

	line := strings.TrimSpace(buf.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "cms", got["component"])
	assert.Equal(t, "cms.fetch.fail", got["action"])
	assert.Equal(t, "boom", got["err"])
	assert.Equal(t, "x", got["fields"].(map[string]any)["slug"])
}

func TestLogger_NilDiscards(t *testing.T) {
	var l *applog.Logger
	assert.NotPanics(t, func() {
		l.Info("x", nil)
		l.With("y").Warn("z", nil)
	})
	assert.Nil(t, applog.Discard())
}
