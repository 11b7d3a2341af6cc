package projects

import (
	"context"
	"fmt"

	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/guard"
	"github.com/taskboard/tracker/internal/app/metrics"
	"github.com/taskboard/tracker/internal/app/services/stats"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/errors"
	"github.com/taskboard/tracker/internal/logging"
)

const notFoundMessage = "Project not found"

// Detail is a project together with its completion progress.
type Detail struct {
	Project         project.Project `json:"project"`
	Progress        stats.Progress  `json:"progress"`
	PercentComplete int             `json:"percentComplete"`
}

// Service manages an identity's projects.
type Service struct {
	guard *guard.Guard
	log   *logging.Logger
}

// New constructs a project service.
func New(g *guard.Guard, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("projects")
	}
	return &Service{guard: g, log: log}
}

// List returns the owner's projects, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]project.Project, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return nil, err
	}
	items, err := scope.ListProjects(ctx)
	if err != nil {
		return nil, errors.Internal("", fmt.Errorf("list projects: %w", err))
	}
	return items, nil
}

// Create stores a new project for ownerID.
func (s *Service) Create(ctx context.Context, ownerID, name, description string) (project.Project, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return project.Project{}, err
	}
	created, err := scope.CreateProject(ctx, project.Project{Name: name, Description: description})
	if err != nil {
		return project.Project{}, errors.Internal("", fmt.Errorf("create project: %w", err))
	}
	return created, nil
}

// Get returns the project and its progress.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Detail, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return Detail{}, err
	}
	p, err := scope.GetProject(ctx, id)
	if err != nil {
		return Detail{}, translate(err, "get project")
	}
	buckets, err := scope.TaskBreakdown(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Internal("", fmt.Errorf("project progress: %w", err))
	}
	progress := stats.ProgressOf(buckets)
	return Detail{Project: p, Progress: progress, PercentComplete: progress.Percent()}, nil
}

// Update replaces the name and, when given, the description.
func (s *Service) Update(ctx context.Context, ownerID, id string, upd project.Update) (project.Project, error) {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return project.Project{}, err
	}
	updated, err := scope.UpdateProject(ctx, id, upd)
	if err != nil {
		return project.Project{}, translate(err, "update project")
	}
	return updated, nil
}

// Delete removes the project and every task in it.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	scope, err := s.guard.For(ownerID)
	if err != nil {
		return err
	}
	removed, err := scope.DeleteProject(ctx, id)
	if err != nil {
		return translate(err, "delete project")
	}
	metrics.RecordCascade(removed)
	s.log.WithContext(ctx).
		WithField("project_id", id).
		WithField("tasks_removed", removed).
		Info("project deleted")
	return nil
}

func translate(err error, op string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return errors.NotFound(notFoundMessage)
	}
	return errors.Internal("", fmt.Errorf("%s: %w", op, err))
}
