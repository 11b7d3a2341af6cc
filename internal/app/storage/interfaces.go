package storage

import (
	"context"
	"errors"

	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
)

var (
	// ErrNotFound is returned when no record matches the full predicate,
	// including the owner. Absence and foreign ownership are indistinguishable.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate is returned when a unique field already exists.
	ErrDuplicate = errors.New("storage: duplicate")
)

// IdentityStore persists registered identities.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, ident identity.Identity) (identity.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (identity.Identity, error)
}

// ProjectStore persists projects. Every lookup and mutation is filtered by
// both id and owner id.
type ProjectStore interface {
	CreateProject(ctx context.Context, p project.Project) (project.Project, error)
	GetProject(ctx context.Context, ownerID, id string) (project.Project, error)
	// ListProjects returns the owner's projects, newest first.
	ListProjects(ctx context.Context, ownerID string) ([]project.Project, error)
	UpdateProject(ctx context.Context, ownerID, id string, upd project.Update) (project.Project, error)
	// DeleteProject removes the project and every task of the same owner that
	// references it as one unit. It returns the number of tasks removed.
	DeleteProject(ctx context.Context, ownerID, id string) (int, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	// CreateTask writes t only if t.ProjectID names a project owned by
	// t.OwnerID; otherwise it returns ErrNotFound and writes nothing.
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	GetTask(ctx context.Context, ownerID, id string) (task.Task, error)
	// ListTasks returns matching tasks, newest first.
	ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error)
	UpdateTask(ctx context.Context, ownerID, id string, upd task.Update) (task.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
	// TaskBreakdown groups matching tasks by status and priority.
	TaskBreakdown(ctx context.Context, filter task.Filter) ([]task.Bucket, error)
	// DeleteOrphanTasks removes tasks whose project no longer exists.
	DeleteOrphanTasks(ctx context.Context) (int, error)
}

// Store is the full persistence surface.
type Store interface {
	IdentityStore
	ProjectStore
	TaskStore
}
