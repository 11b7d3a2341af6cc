package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", errors.Validation("Invalid priority"), 400, "Invalid priority"},
		{"unauthorized", errors.Unauthorized("Missing token"), 401, "Missing token"},
		{"invalid token", errors.InvalidToken(fmt.Errorf("expired")), 401, "Invalid token"},
		{"missing secret", errors.Configuration("JWT_SECRET is missing"), 500, "JWT_SECRET is missing"},
		{"not found", errors.NotFound("Task not found"), 404, "Task not found"},
		{"conflict", errors.Conflict("Email already registered"), 409, "Email already registered"},
		{"internal hides detail", errors.Internal("db exploded", fmt.Errorf("dial tcp")), 500, "Internal server error"},
		{"unclassified", fmt.Errorf("pq: relation does not exist"), 500, "Internal server error"},
		{"wrapped", fmt.Errorf("handler: %w", errors.NotFound("Project not found")), 404, "Project not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := MapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestErrorWriterBody(t *testing.T) {
	var logs bytes.Buffer
	ew := NewErrorWriter(logging.NewWithOutput("test", "debug", "json", &logs), true)

	rec := httptest.NewRecorder()
	ew.Write(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil), fmt.Errorf("secret connection string"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", gjson.Get(rec.Body.String(), "message").String())
	assert.NotContains(t, rec.Body.String(), "secret connection string")
	assert.Contains(t, logs.String(), "secret connection string")
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) (map[string]any, error) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return DecodeJSON(httptest.NewRecorder(), req)
	}

	got, err := decode("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = decode(`{"title":"x","dueDate":null}`)
	require.NoError(t, err)
	assert.Equal(t, "x", got["title"])
	v, ok := got["dueDate"]
	assert.True(t, ok)
	assert.Nil(t, v)

	_, err = decode(`[1,2]`)
	assert.True(t, errors.IsValidation(err))

	_, err = decode(`{"title":`)
	assert.True(t, errors.IsValidation(err))

	big, _ := json.Marshal(map[string]string{"title": strings.Repeat("x", MaxBodyBytes)})
	_, err = decode(string(big))
	se := errors.GetServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, http.StatusRequestEntityTooLarge, se.HTTPStatus)
}

func TestReadAllWithLimit(t *testing.T) {
	data, truncated, err := ReadAllWithLimit(strings.NewReader("hello"), 3)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, "hel", string(data))

	_, err = ReadAllStrict(strings.NewReader("hello"), 3)
	assert.Error(t, err)

	data, err = ReadAllStrict(strings.NewReader("hi"), 3)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}
