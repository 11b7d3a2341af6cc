package tasks

import (
	"context"
	"fmt"

	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/guard"
	"github.com/taskboard/tracker/internal/app/services/stats"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

// Service manages an identity's tasks and the dashboard over them.
type Service struct {
	guard *guard.Guard
	log   *logging.Logger
}

// New constructs a task service.
func New(g *guard.Guard, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("tasks")
	}
	return &Service{guard: g, log: log}
}

// List returns the owner's tasks, newest first. An empty projectID lists all.
func (s *Service) List(ctx context.Context, ownerID, projectID string) ([]task.Task, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return nil, err
	}
	items, err := scope.ListTasks(ctx, projectID)
	if err != nil {
		return nil, errors.Internal("", fmt.Errorf("list tasks: %w", err))
	}
	return items, nil
}

// Create stores t under ownerID. A parent project that is missing or owned by
// someone else yields "Project not found" and nothing is written.
func (s *Service) Create(ctx context.Context, ownerID string, t task.Task) (task.Task, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return task.Task{}, err
	}
	created, err := scope.CreateTask(ctx, t)
	if errors.Is(err, storage.ErrNotFound) {
		return task.Task{}, errors.NotFound("Project not found")
	}
	if err != nil {
		return task.Task{}, errors.Internal("", fmt.Errorf("create task: %w", err))
	}
	return created, nil
}

// Update applies upd to the owner's task.
func (s *Service) Update(ctx context.Context, ownerID, id string, upd task.Update) (task.Task, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return task.Task{}, err
	}
	updated, err := scope.UpdateTask(ctx, id, upd)
	if err != nil {
		return task.Task{}, translate(err, "update task")
	}
	return updated, nil
}

// Delete removes the owner's task.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return err
	}
	if err := scope.DeleteTask(ctx, id); err != nil {
		return translate(err, "delete task")
	}
	return nil
}

// Dashboard summarises every task the owner has.
func (s *Service) Dashboard(ctx context.Context, ownerID string) (stats.Dashboard, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	buckets, err := scope.TaskBreakdown(ctx, "")
	if err != nil {
		return stats.Dashboard{}, errors.Internal("", fmt.Errorf("dashboard stats: %w", err))
	}
	return stats.Summarize(buckets), nil
}

func translate(err error, op string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return errors.NotFound("Task not found")
	}
	return errors.Internal("", fmt.Errorf("%s: %w", op, err))
}
