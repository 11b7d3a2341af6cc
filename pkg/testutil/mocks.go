// Package testutil provides common testing utilities and mock implementations.
package testutil

import (
	"context"
	"sync"

	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/storage/memory"
)

// Operation names accepted by FaultyStore.FailOn.
const (
	OpCreateIdentity     = "CreateIdentity"
	OpGetIdentityByEmail = "GetIdentityByEmail"
	OpCreateProject      = "CreateProject"
	OpGetProject         = "GetProject"
	OpListProjects       = "ListProjects"
	OpUpdateProject      = "UpdateProject"
	OpDeleteProject      = "DeleteProject"
	OpCreateTask         = "CreateTask"
	OpGetTask            = "GetTask"
	OpListTasks          = "ListTasks"
	OpUpdateTask         = "UpdateTask"
	OpDeleteTask         = "DeleteTask"
	OpTaskBreakdown      = "TaskBreakdown"
	OpDeleteOrphanTasks  = "DeleteOrphanTasks"
)

// FaultyStore wraps a storage.Store and returns injected errors for selected
// operations. It also counts calls per operation.
type FaultyStore struct {
	inner storage.Store

	mu     sync.Mutex
	faults map[string]error
	calls  map[string]int
}

var _ storage.Store = (*FaultyStore)(nil)

// NewFaultyStore wraps inner. A nil inner uses a fresh in-memory store.
func NewFaultyStore(inner storage.Store) *FaultyStore {
	if inner == nil {
		inner = memory.New()
	}
	return &FaultyStore{
		inner:  inner,
		faults: make(map[string]error),
		calls:  make(map[string]int),
	}
}

// FailOn makes op return err until Reset.
func (f *FaultyStore) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = err
}

// Reset clears injected faults and call counts.
func (f *FaultyStore) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = make(map[string]error)
	f.calls = make(map[string]int)
}

// Calls returns how many times op was invoked.
func (f *FaultyStore) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of store calls of any kind.
func (f *FaultyStore) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FaultyStore) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.faults[op]
}

func (f *FaultyStore) CreateIdentity(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	if err := f.enter(OpCreateIdentity); err != nil {
		return identity.Identity{}, err
	}
	return f.inner.CreateIdentity(ctx, ident)
}

func (f *FaultyStore) GetIdentityByEmail(ctx context.Context, email string) (identity.Identity, error) {
	if err := f.enter(OpGetIdentityByEmail); err != nil {
		return identity.Identity{}, err
	}
	return f.inner.GetIdentityByEmail(ctx, email)
}

func (f *FaultyStore) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	if err := f.enter(OpCreateProject); err != nil {
		return project.Project{}, err
	}
	return f.inner.CreateProject(ctx, p)
}

func (f *FaultyStore) GetProject(ctx context.Context, ownerID, id string) (project.Project, error) {
	if err := f.enter(OpGetProject); err != nil {
		return project.Project{}, err
	}
	return f.inner.GetProject(ctx, ownerID, id)
}

func (f *FaultyStore) ListProjects(ctx context.Context, ownerID string) ([]project.Project, error) {
	if err := f.enter(OpListProjects); err != nil {
		return nil, err
	}
	return f.inner.ListProjects(ctx, ownerID)
}

func (f *FaultyStore) UpdateProject(ctx context.Context, ownerID, id string, upd project.Update) (project.Project, error) {
	if err := f.enter(OpUpdateProject); err != nil {
		return project.Project{}, err
	}
	return f.inner.UpdateProject(ctx, ownerID, id, upd)
}

func (f *FaultyStore) DeleteProject(ctx context.Context, ownerID, id string) (int, error) {
	if err := f.enter(OpDeleteProject); err != nil {
		return 0, err
	}
	return f.inner.DeleteProject(ctx, ownerID, id)
}

func (f *FaultyStore) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if err := f.enter(OpCreateTask); err != nil {
		return task.Task{}, err
	}
	return f.inner.CreateTask(ctx, t)
}

func (f *FaultyStore) GetTask(ctx context.Context, ownerID, id string) (task.Task, error) {
	if err := f.enter(OpGetTask); err != nil {
		return task.Task{}, err
	}
	return f.inner.GetTask(ctx, ownerID, id)
}

func (f *FaultyStore) ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	if err := f.enter(OpListTasks); err != nil {
		return nil, err
	}
	return f.inner.ListTasks(ctx, filter)
}

func (f *FaultyStore) UpdateTask(ctx context.Context, ownerID, id string, upd task.Update) (task.Task, error) {
	if err := f.enter(OpUpdateTask); err != nil {
		return task.Task{}, err
	}
	return f.inner.UpdateTask(ctx, ownerID, id, upd)
}

func (f *FaultyStore) DeleteTask(ctx context.Context, ownerID, id string) error {
	if err := f.enter(OpDeleteTask); err != nil {
		return err
	}
	return f.inner.DeleteTask(ctx, ownerID, id)
}

func (f *FaultyStore) TaskBreakdown(ctx context.Context, filter task.Filter) ([]task.Bucket, error) {
	if err := f.enter(OpTaskBreakdown); err != nil {
		return nil, err
	}
	return f.inner.TaskBreakdown(ctx, filter)
}

func (f *FaultyStore) DeleteOrphanTasks(ctx context.Context) (int, error) {
	if err := f.enter(OpDeleteOrphanTasks); err != nil {
		return 0, err
	}
	return f.inner.DeleteOrphanTasks(ctx)
}
