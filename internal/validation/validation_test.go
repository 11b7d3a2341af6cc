package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/errors"
)

func messageOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	se := errors.GetServiceError(err)
	require.NotNil(t, se, "expected service error, got %v", err)
	assert.Equal(t, 400, se.HTTPStatus)
	return se.Message
}

func TestFirstViolationWins(t *testing.T) {
	_, err := CreateTask.Validate(map[string]any{
		"title":    "",
		"priority": "urgent",
	})
	assert.Equal(t, "projectId is required", messageOf(t, err))

	_, err = CreateTask.Validate(map[string]any{
		"projectId": uuid.NewString(),
		"title":     "ok",
		"priority":  "urgent",
		"status":    "blocked",
	})
	assert.Equal(t, "Invalid priority", messageOf(t, err))
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		message string
	}{
		{"missing email", map[string]any{"password": "secret1"}, "Email is invalid"},
		{"bad email", map[string]any{"email": "nope", "password": "secret1"}, "Email is invalid"},
		{"missing password", map[string]any{"email": "a@b.co"}, "Password is required"},
		{"numeric password", map[string]any{"email": "a@b.co", "password": 123456}, "Password is required"},
		{"short password", map[string]any{"email": "a@b.co", "password": "12345"}, "Password must be at least 6 characters"},
		{"name not string", map[string]any{"name": 7, "email": "a@b.co", "password": "secret1"}, "Name must be a string"},
		{"long name", map[string]any{"name": strings.Repeat("x", 81), "email": "a@b.co", "password": "secret1"}, "Name must be at most 80 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Register.Validate(tt.input)
			assert.Equal(t, tt.message, messageOf(t, err))
		})
	}

	values, err := Register.Validate(map[string]any{
		"name":     "  Alice  ",
		"email":    " Alice@Example.COM ",
		"password": "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", values.String("name"))
	assert.Equal(t, "alice@example.com", values.String("email"))
	assert.Equal(t, "secret1", values.String("password"))
}

func TestProjectSchemas(t *testing.T) {
	_, err := CreateProject.Validate(map[string]any{"name": "   "})
	assert.Equal(t, "Name must be between 1 and 120 characters", messageOf(t, err))

	_, err = CreateProject.Validate(map[string]any{})
	assert.Equal(t, "Name is required", messageOf(t, err))

	_, err = CreateProject.Validate(map[string]any{"name": "ok", "description": nil})
	assert.Equal(t, "Description must be a string", messageOf(t, err))

	_, err = UpdateProject.Validate(map[string]any{"id": "123", "name": "ok"})
	assert.Equal(t, "Invalid project id", messageOf(t, err))

	values, err := UpdateProject.Validate(map[string]any{"id": uuid.NewString(), "name": " Launch "})
	require.NoError(t, err)
	assert.Equal(t, "Launch", values.String("name"))
	assert.Nil(t, values.StringPtr("description"))
}

func TestListTasksProjectFilter(t *testing.T) {
	values, err := ListTasks.Validate(map[string]any{})
	require.NoError(t, err)
	assert.False(t, values.Has("projectId"))

	_, err = ListTasks.Validate(map[string]any{"projectId": "not-an-id"})
	assert.Equal(t, "Invalid projectId", messageOf(t, err))
}

func TestDueDateSemantics(t *testing.T) {
	id := uuid.NewString()

	values, err := CreateTask.Validate(map[string]any{"projectId": id, "title": "t"})
	require.NoError(t, err)
	assert.False(t, values.Has("dueDate"))

	_, err = CreateTask.Validate(map[string]any{"projectId": id, "title": "t", "dueDate": nil})
	assert.Equal(t, "dueDate must be a valid date", messageOf(t, err))

	_, err = CreateTask.Validate(map[string]any{"projectId": id, "title": "t", "dueDate": "soon"})
	assert.Equal(t, "dueDate must be a valid date", messageOf(t, err))

	values, err = CreateTask.Validate(map[string]any{"projectId": id, "title": "t", "dueDate": "2026-03-01"})
	require.NoError(t, err)
	due, ok := values.Time("dueDate")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), due)

	tests := []struct {
		name    string
		dueDate any
		present bool
		null    bool
	}{
		{"omitted", nil, false, false},
		{"null", nil, true, true},
		{"empty string", "", true, true},
		{"timestamp", "2026-03-01T10:30:00+02:00", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := map[string]any{"id": id, "title": "t"}
			if tt.present {
				input["dueDate"] = tt.dueDate
			}
			values, err := UpdateTask.Validate(input)
			require.NoError(t, err)
			assert.Equal(t, tt.present, values.Has("dueDate"))
			assert.Equal(t, tt.null, values.IsNull("dueDate"))
		})
	}

	values, err = UpdateTask.Validate(map[string]any{"id": id, "title": "t", "dueDate": "2026-03-01T10:30:00+02:00"})
	require.NoError(t, err)
	due, ok = values.Time("dueDate")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), due)
}

func TestEnums(t *testing.T) {
	id := uuid.NewString()
	for _, status := range []string{"todo", "in-progress", "done"} {
		_, err := UpdateTask.Validate(map[string]any{"id": id, "title": "t", "status": status})
		assert.NoError(t, err, status)
	}
	_, err := UpdateTask.Validate(map[string]any{"id": id, "title": "t", "status": "in_progress"})
	assert.Equal(t, "Invalid status", messageOf(t, err))
}
