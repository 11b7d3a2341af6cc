package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}

func TestDeleteOrphanTasks(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := uuid.NewString()

	p, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "live"})
	require.NoError(t, err)
	live, err := s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: p.ID, Title: "keep"})
	require.NoError(t, err)
	orphan := s.InsertTaskUnchecked(task.Task{OwnerID: owner, ProjectID: uuid.NewString(), Title: "orphan"})

	removed, err := s.DeleteOrphanTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.GetTask(ctx, owner, orphan.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetTask(ctx, owner, live.ID)
	assert.NoError(t, err)
}

func TestReturnedTasksAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	owner := uuid.NewString()

	p, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "p"})
	require.NoError(t, err)
	created, err := s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: p.ID, Title: "t"})
	require.NoError(t, err)

	created.Title = "mutated"
	got, err := s.GetTask(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}
