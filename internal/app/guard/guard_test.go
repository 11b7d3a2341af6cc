package guard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/storage/memory"
	"github.com/taskboard/tracker/internal/errors"
)

func TestForRequiresIdentity(t *testing.T) {
	g := New(memory.New(), memory.New())
	_, err := g.For("  ")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}

func TestScopeStampsOwner(t *testing.T) {
	store := memory.New()
	g := New(store, store)
	ctx := context.Background()

	alice, err := g.For(uuid.NewString())
	require.NoError(t, err)
	bob, err := g.For(uuid.NewString())
	require.NoError(t, err)

	p, err := alice.CreateProject(ctx, project.Project{OwnerID: bob.Owner(), Name: "Launch"})
	require.NoError(t, err)
	assert.Equal(t, alice.Owner(), p.OwnerID)

	tk, err := alice.CreateTask(ctx, task.Task{ProjectID: p.ID, Title: "Write spec"})
	require.NoError(t, err)
	assert.Equal(t, alice.Owner(), tk.OwnerID)

	_, err = bob.CreateTask(ctx, task.Task{OwnerID: alice.Owner(), ProjectID: p.ID, Title: "sneaky"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = bob.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = bob.GetTask(ctx, tk.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, bob.DeleteTask(ctx, tk.ID), storage.ErrNotFound)

	buckets, err := bob.TaskBreakdown(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, buckets)

	removed, err := alice.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
