package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/guard"
	"github.com/taskboard/tracker/internal/app/storage/memory"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

func TestProjectLifecycle(t *testing.T) {
	store := memory.New()
	svc := New(guard.New(store, store), logging.NewDiscard())
	ctx := context.Background()
	alice, bob := uuid.NewString(), uuid.NewString()

	p, err := svc.Create(ctx, alice, "Launch", "Q3 launch")
	require.NoError(t, err)

	for _, tk := range []task.Task{
		{OwnerID: alice, ProjectID: p.ID, Title: "a", Status: task.StatusDone},
		{OwnerID: alice, ProjectID: p.ID, Title: "b"},
		{OwnerID: alice, ProjectID: p.ID, Title: "c"},
	} {
		_, err := store.CreateTask(ctx, tk)
		require.NoError(t, err)
	}

	detail, err := svc.Get(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.Progress.TotalTasks)
	assert.Equal(t, 1, detail.Progress.DoneTasks)
	assert.Equal(t, 33, detail.PercentComplete)

	_, err = svc.Get(ctx, bob, p.ID)
	assertNotFound(t, err)
	_, err = svc.Update(ctx, bob, p.ID, project.Update{Name: "Mine"})
	assertNotFound(t, err)
	assertNotFound(t, svc.Delete(ctx, bob, p.ID))

	updated, err := svc.Update(ctx, alice, p.ID, project.Update{Name: "Launch v2"})
	require.NoError(t, err)
	assert.Equal(t, "Q3 launch", updated.Description)

	require.NoError(t, svc.Delete(ctx, alice, p.ID))
	tasks, err := store.ListTasks(ctx, task.Filter{OwnerID: alice})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmptyProjectProgress(t *testing.T) {
	store := memory.New()
	svc := New(guard.New(store, store), logging.NewDiscard())
	owner := uuid.NewString()

	p, err := svc.Create(context.Background(), owner, "Empty", "")
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), owner, p.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.Progress.TotalTasks)
	assert.Zero(t, detail.PercentComplete)
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	se := errors.GetServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, 404, se.HTTPStatus)
	assert.Equal(t, "Project not found", se.Message)
}
