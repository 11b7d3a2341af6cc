// Package storagetest holds behavioural checks every storage.Store must pass.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
)

// Run exercises store against the ownership and cascade rules. newStore must
// return an empty store each call.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("identity email is unique", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateIdentity(ctx, identity.Identity{Email: "alice@example.com", PasswordHash: "h"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		_, err = s.CreateIdentity(ctx, identity.Identity{Email: "alice@example.com", PasswordHash: "h2"})
		assert.ErrorIs(t, err, storage.ErrDuplicate)

		found, err := s.GetIdentityByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "h", found.PasswordHash)

		_, err = s.GetIdentityByEmail(ctx, "bob@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("projects are scoped by owner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		alice, bob := uuid.NewString(), uuid.NewString()

		p, err := s.CreateProject(ctx, project.Project{OwnerID: alice, Name: "Launch"})
		require.NoError(t, err)

		_, err = s.GetProject(ctx, bob, p.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.UpdateProject(ctx, bob, p.ID, project.Update{Name: "Hijack"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.DeleteProject(ctx, bob, p.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		list, err := s.ListProjects(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, list)

		got, err := s.GetProject(ctx, alice, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Launch", got.Name)
	})

	t.Run("project update keeps omitted description", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := uuid.NewString()

		p, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "Launch", Description: "v1"})
		require.NoError(t, err)

		updated, err := s.UpdateProject(ctx, owner, p.ID, project.Update{Name: "Launch 2"})
		require.NoError(t, err)
		assert.Equal(t, "Launch 2", updated.Name)
		assert.Equal(t, "v1", updated.Description)

		empty := ""
		updated, err = s.UpdateProject(ctx, owner, p.ID, project.Update{Name: "Launch 2", Description: &empty})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Description)
	})

	t.Run("projects list newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := uuid.NewString()

		first, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "first"})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "second"})
		require.NoError(t, err)

		list, err := s.ListProjects(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("task requires owned project", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		alice, bob := uuid.NewString(), uuid.NewString()

		p, err := s.CreateProject(ctx, project.Project{OwnerID: alice, Name: "Launch"})
		require.NoError(t, err)

		_, err = s.CreateTask(ctx, task.Task{OwnerID: bob, ProjectID: p.ID, Title: "sneaky"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.CreateTask(ctx, task.Task{OwnerID: alice, ProjectID: uuid.NewString(), Title: "lost"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		tasks, err := s.ListTasks(ctx, task.Filter{OwnerID: bob})
		require.NoError(t, err)
		assert.Empty(t, tasks)

		created, err := s.CreateTask(ctx, task.Task{OwnerID: alice, ProjectID: p.ID, Title: "Write spec"})
		require.NoError(t, err)
		assert.Equal(t, task.PriorityMedium, created.Priority)
		assert.Equal(t, task.StatusTodo, created.Status)
		assert.Nil(t, created.DueDate)
	})

	t.Run("task update and delete are scoped by owner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		alice, bob := uuid.NewString(), uuid.NewString()

		p, err := s.CreateProject(ctx, project.Project{OwnerID: alice, Name: "Launch"})
		require.NoError(t, err)
		due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tk, err := s.CreateTask(ctx, task.Task{OwnerID: alice, ProjectID: p.ID, Title: "Write spec", DueDate: &due})
		require.NoError(t, err)

		_, err = s.GetTask(ctx, bob, tk.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.UpdateTask(ctx, bob, tk.ID, task.Update{Title: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteTask(ctx, bob, tk.ID), storage.ErrNotFound)

		done := task.StatusDone
		updated, err := s.UpdateTask(ctx, alice, tk.ID, task.Update{Title: "Write spec", Status: &done})
		require.NoError(t, err)
		assert.Equal(t, task.StatusDone, updated.Status)
		assert.Equal(t, task.PriorityMedium, updated.Priority)
		if assert.NotNil(t, updated.DueDate) {
			assert.True(t, updated.DueDate.Equal(due))
		}

		updated, err = s.UpdateTask(ctx, alice, tk.ID, task.Update{Title: "Write spec", DueDate: task.DueDateClear})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)

		require.NoError(t, s.DeleteTask(ctx, alice, tk.ID))
		_, err = s.GetTask(ctx, alice, tk.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("deleting a project cascades its tasks", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := uuid.NewString()

		doomed, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "doomed"})
		require.NoError(t, err)
		kept, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "kept"})
		require.NoError(t, err)

		var doomedTasks []string
		for i := 0; i < 3; i++ {
			tk, err := s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: doomed.ID, Title: "t"})
			require.NoError(t, err)
			doomedTasks = append(doomedTasks, tk.ID)
		}
		survivor, err := s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: kept.ID, Title: "t"})
		require.NoError(t, err)

		removed, err := s.DeleteProject(ctx, owner, doomed.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, removed)

		for _, id := range doomedTasks {
			_, err := s.GetTask(ctx, owner, id)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		}
		_, err = s.GetTask(ctx, owner, survivor.ID)
		assert.NoError(t, err)
	})

	t.Run("task list filters by project", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := uuid.NewString()

		a, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "a"})
		require.NoError(t, err)
		b, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "b"})
		require.NoError(t, err)
		_, err = s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: a.ID, Title: "a1"})
		require.NoError(t, err)
		_, err = s.CreateTask(ctx, task.Task{OwnerID: owner, ProjectID: b.ID, Title: "b1"})
		require.NoError(t, err)

		all, err := s.ListTasks(ctx, task.Filter{OwnerID: owner})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		onlyA, err := s.ListTasks(ctx, task.Filter{OwnerID: owner, ProjectID: a.ID})
		require.NoError(t, err)
		require.Len(t, onlyA, 1)
		assert.Equal(t, "a1", onlyA[0].Title)
	})

	t.Run("breakdown groups by status and priority", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner := uuid.NewString()

		p, err := s.CreateProject(ctx, project.Project{OwnerID: owner, Name: "p"})
		require.NoError(t, err)
		seed := []task.Task{
			{Status: task.StatusDone, Priority: task.PriorityHigh},
			{Status: task.StatusDone, Priority: task.PriorityHigh},
			{Status: task.StatusTodo, Priority: task.PriorityLow},
		}
		for _, tk := range seed {
			tk.OwnerID, tk.ProjectID, tk.Title = owner, p.ID, "t"
			_, err := s.CreateTask(ctx, tk)
			require.NoError(t, err)
		}

		buckets, err := s.TaskBreakdown(ctx, task.Filter{OwnerID: owner, ProjectID: p.ID})
		require.NoError(t, err)
		assert.ElementsMatch(t, []task.Bucket{
			{Status: task.StatusDone, Priority: task.PriorityHigh, Count: 2},
			{Status: task.StatusTodo, Priority: task.PriorityLow, Count: 1},
		}, buckets)

		empty, err := s.TaskBreakdown(ctx, task.Filter{OwnerID: uuid.NewString()})
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
