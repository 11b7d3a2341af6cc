package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/tracker/internal/app/domain/project"
)

func TestFaultyStoreInjectsAndCounts(t *testing.T) {
	ctx := context.Background()
	store := NewFaultyStore(nil)
	boom := errors.New("boom")

	_, err := store.CreateProject(ctx, project.Project{OwnerID: "alice", Name: "p"})
	require.NoError(t, err)

	store.FailOn(OpListProjects, boom)
	_, err = store.ListProjects(ctx, "alice")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.Calls(OpListProjects))
	assert.Equal(t, 2, store.TotalCalls())

	store.Reset()
	list, err := store.ListProjects(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, store.TotalCalls())
}
