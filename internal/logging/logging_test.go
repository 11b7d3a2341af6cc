package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("svc", "debug", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("svc", "nonsense", "json").GetLevel())
}

func TestWithContextAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("tracker", "info", "json", &buf)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithUserID(ctx, "user-1")
	logger.WithContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "tracker", line["service"])
	assert.Equal(t, "trace-1", line["trace_id"])
	assert.Equal(t, "user-1", line["user_id"])
}

func TestLogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("tracker", "info", "json", &buf)

	logger.LogRequest(context.Background(), http.MethodGet, "/api/projects", http.StatusInternalServerError, 12*time.Millisecond)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.EqualValues(t, 500, line["status"])
}

func TestContextHelpersEmpty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Equal(t, ctx, WithTraceID(ctx, ""))
	assert.NotEmpty(t, NewTraceID())
}
