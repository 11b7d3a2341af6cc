// Package guard binds store access to the calling identity. Every operation a
// Scope exposes passes the owner id into the store predicate, so a resource
// owned by someone else is indistinguishable from one that does not exist.
package guard

import (
	"context"
	"strings"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/errors"
)

// Guard hands out owner-bound scopes.
type Guard struct {
	projects storage.ProjectStore
	tasks    storage.TaskStore
}

// New creates a guard over the given stores.
func New(projects storage.ProjectStore, tasks storage.TaskStore) *Guard {
	return &Guard{projects: projects, tasks: tasks}
}

// For returns a scope bound to identityID.
func (g *Guard) For(identityID string) (Scope, error) {
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return Scope{}, errors.Unauthorized("Missing token")
	}
	return Scope{owner: identityID, projects: g.projects, tasks: g.tasks}, nil
}

// Scope is a view of the store restricted to one owner. The zero value is
// unusable; obtain one from Guard.For.
type Scope struct {
	owner    string
	projects storage.ProjectStore
	tasks    storage.TaskStore
}

// Owner returns the identity this scope is bound to.
func (s Scope) Owner() string { return s.owner }

func (s Scope) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	p.ID = ""
	p.OwnerID = s.owner
	return s.projects.CreateProject(ctx, p)
}

func (s Scope) ListProjects(ctx context.Context) ([]project.Project, error) {
	return s.projects.ListProjects(ctx, s.owner)
}

func (s Scope) GetProject(ctx context.Context, id string) (project.Project, error) {
	return s.projects.GetProject(ctx, s.owner, id)
}

func (s Scope) UpdateProject(ctx context.Context, id string, upd project.Update) (project.Project, error) {
	return s.projects.UpdateProject(ctx, s.owner, id, upd)
}

// DeleteProject removes the project and its tasks, returning the task count.
func (s Scope) DeleteProject(ctx context.Context, id string) (int, error) {
	return s.projects.DeleteProject(ctx, s.owner, id)
}

// CreateTask writes t under the scope owner. The parent project must belong to
// the same owner or storage.ErrNotFound is returned.
func (s Scope) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = ""
	t.OwnerID = s.owner
	return s.tasks.CreateTask(ctx, t)
}

func (s Scope) GetTask(ctx context.Context, id string) (task.Task, error) {
	return s.tasks.GetTask(ctx, s.owner, id)
}

// ListTasks lists the owner's tasks, optionally narrowed to one project.
func (s Scope) ListTasks(ctx context.Context, projectID string) ([]task.Task, error) {
	return s.tasks.ListTasks(ctx, task.Filter{OwnerID: s.owner, ProjectID: projectID})
}

func (s Scope) UpdateTask(ctx context.Context, id string, upd task.Update) (task.Task, error) {
	return s.tasks.UpdateTask(ctx, s.owner, id, upd)
}

func (s Scope) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.DeleteTask(ctx, s.owner, id)
}

// TaskBreakdown groups the owner's tasks, optionally within one project.
func (s Scope) TaskBreakdown(ctx context.Context, projectID string) ([]task.Bucket, error) {
	return s.tasks.TaskBreakdown(ctx, task.Filter{OwnerID: s.owner, ProjectID: projectID})
}
