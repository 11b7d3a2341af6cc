// Package runtime wires configuration, storage and the HTTP server into a
// runnable process.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	app "github.com/taskboard/tracker/internal/app"
	"github.com/taskboard/tracker/internal/app/httpapi"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/app/storage/memory"
	"github.com/taskboard/tracker/internal/app/storage/sqlstore"
	"github.com/taskboard/tracker/internal/config"
	"github.com/taskboard/tracker/internal/logging"
	"github.com/taskboard/tracker/internal/platform/migrations"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logging.Logger
	app        *app.Application
	httpServer *http.Server
	db         *sqlx.DB
}

// NewApplication constructs the process from cfg.
func NewApplication(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	log := logging.New("tracker", cfg.Logging.Level, cfg.Logging.Format)

	store, db, err := buildStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("configure store: %w", err)
	}

	application, err := app.New(app.FromStore(store), app.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		Issuer:         cfg.Auth.Issuer,
		SweepSchedule:  cfg.Maintenance.OrphanSweepSchedule,
		DisableSweeper: cfg.Maintenance.OrphanSweepSchedule == "",
	}, log)
	if err != nil {
		closeDB(db, log)
		return nil, fmt.Errorf("build application: %w", err)
	}

	handler := httpapi.NewHandler(application, httpapi.Config{
		APIPrefix:      cfg.Server.APIPrefix,
		AllowedOrigins: cfg.AllowedOrigins(),
		Verbose:        !cfg.IsProduction(),
	}, log)

	return &Application{
		cfg: cfg,
		log: log,
		app: application,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
		db: db,
	}, nil
}

// Handler exposes the HTTP surface, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts background services and the HTTP server, and blocks until the
// context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains the HTTP server, stops background services and closes the
// database.
func (a *Application) Shutdown(ctx context.Context) error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.app.Stop(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("stop services: %w", err))
	}
	closeDB(a.db, a.log)
	return errors.Join(errs...)
}

func buildStore(ctx context.Context, cfg config.DatabaseConfig) (storage.Store, *sqlx.DB, error) {
	switch cfg.Driver {
	case "", "memory":
		return memory.New(), nil, nil
	case "postgres", "sqlite3":
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Apply(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	return sqlstore.New(db), db, nil
}

func closeDB(db *sqlx.DB, log *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.WithError(err).Warn("error closing database connection")
	}
}
