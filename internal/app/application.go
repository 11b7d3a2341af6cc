package app

import (
	"context"
	"fmt"

	"github.com/taskboard/tracker/internal/app/auth"
	"github.com/taskboard/tracker/internal/app/guard"
	"github.com/taskboard/tracker/internal/app/maintenance"
	"github.com/taskboard/tracker/internal/app/services/accounts"
	"github.com/taskboard/tracker/internal/app/services/projects"
	"github.com/taskboard/tracker/internal/app/services/tasks"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/storage/memory"
	"github.com/taskboard/tracker/internal/app/system"
	"github.com/taskboard/tracker/internal/logging"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Identities storage.IdentityStore
	Projects   storage.ProjectStore
	Tasks      storage.TaskStore
}

// FromStore uses one combined store for every concern.
func FromStore(s storage.Store) Stores {
	return Stores{Identities: s, Projects: s, Tasks: s}
}

// Options configures the application services.
type Options struct {
	JWTSecret     string
	Issuer        string
	SweepSchedule string
	// DisableSweeper skips registering the background orphan sweep.
	DisableSweeper bool
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logging.Logger

	Tokens   *auth.TokenService
	Guard    *guard.Guard
	Accounts *accounts.Service
	Projects *projects.Service
	Tasks    *tasks.Service
	Sweeper  *maintenance.Sweeper
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logging.Logger) (*Application, error) {
	if log == nil {
		log = logging.NewDefault("app")
	}

	if stores.Identities == nil || stores.Projects == nil || stores.Tasks == nil {
		mem := memory.New()
		if stores.Identities == nil {
			stores.Identities = mem
		}
		if stores.Projects == nil {
			stores.Projects = mem
		}
		if stores.Tasks == nil {
			stores.Tasks = mem
		}
	}

	if opts.JWTSecret == "" {
		log.Warn("JWT_SECRET not set; registration, login and authenticated routes will fail")
	}
	tokens := auth.NewTokenService(opts.JWTSecret, auth.WithIssuer(opts.Issuer))
	g := guard.New(stores.Projects, stores.Tasks)

	application := &Application{
		manager:  system.NewManager(),
		log:      log,
		Tokens:   tokens,
		Guard:    g,
		Accounts: accounts.New(stores.Identities, tokens, log),
		Projects: projects.New(g, log),
		Tasks:    tasks.New(g, log),
	}

	if !opts.DisableSweeper {
		application.Sweeper = maintenance.NewSweeper(stores.Tasks, opts.SweepSchedule, log)
		if err := application.manager.Register(application.Sweeper); err != nil {
			return nil, fmt.Errorf("register %s: %w", application.Sweeper.Name(), err)
		}
	}

	return application, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
