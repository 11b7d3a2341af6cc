// Package sqlstore implements the storage interfaces on top of sqlx. The same
// queries run on PostgreSQL (lib/pq) and SQLite (go-sqlite3); placeholders are
// rebound per driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
	"github.com/taskboard/tracker/internal/config"
)

// Store implements storage.Store backed by a SQL database.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Open connects to the configured database and verifies it is reachable.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == "" {
		return nil, fmt.Errorf("database driver not configured")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn not configured")
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite3" {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Store) q(query string) string {
	return s.db.Rebind(query)
}

// --- IdentityStore ----------------------------------------------------------

func (s *Store) CreateIdentity(ctx context.Context, ident identity.Identity) (identity.Identity, error) {
	if ident.ID == "" {
		ident.ID = uuid.NewString()
	}
	ident.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), ident.ID, ident.Name, ident.Email, ident.PasswordHash, ident.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.Identity{}, storage.ErrDuplicate
		}
		return identity.Identity{}, err
	}
	return ident, nil
}

func (s *Store) GetIdentityByEmail(ctx context.Context, email string) (identity.Identity, error) {
	var ident identity.Identity
	err := s.db.GetContext(ctx, &ident, s.q(`
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`), email)
	if err != nil {
		return identity.Identity{}, notFound(err)
	}
	return ident, nil
}

// --- ProjectStore -----------------------------------------------------------

const projectColumns = `id, owner_id, name, description, created_at, updated_at`

func (s *Store) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO projects (id, owner_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), p.ID, p.OwnerID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, ownerID, id string) (project.Project, error) {
	var p project.Project
	err := s.db.GetContext(ctx, &p, s.q(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return project.Project{}, notFound(err)
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]project.Project, error) {
	result := make([]project.Project, 0)
	err := s.db.SelectContext(ctx, &result, s.q(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`), ownerID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) UpdateProject(ctx context.Context, ownerID, id string, upd project.Update) (project.Project, error) {
	sets := []string{"name = ?", "updated_at = ?"}
	args := []any{upd.Name, s.now()}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	args = append(args, id, ownerID)

	result, err := s.db.ExecContext(ctx, s.q(`
		UPDATE projects
		SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND owner_id = ?
	`), args...)
	if err != nil {
		return project.Project{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return project.Project{}, storage.ErrNotFound
	}
	return s.GetProject(ctx, ownerID, id)
}

func (s *Store) DeleteProject(ctx context.Context, ownerID, id string) (removed int, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, s.q(`
		DELETE FROM projects WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return 0, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return 0, storage.ErrNotFound
	}

	result, err = tx.ExecContext(ctx, s.q(`
		DELETE FROM tasks WHERE owner_id = ? AND project_id = ?
	`), ownerID, id)
	if err != nil {
		return 0, fmt.Errorf("cascade tasks: %w", err)
	}
	rows, _ := result.RowsAffected()

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return int(rows), nil
}

// --- TaskStore --------------------------------------------------------------

const taskColumns = `id, owner_id, project_id, title, description, priority, status, due_date, created_at, updated_at`

func (s *Store) CreateTask(ctx context.Context, t task.Task) (created task.Task, err error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t = t.WithDefaults()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return task.Task{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The parent row stays locked until commit so a concurrent project delete
	// either runs first (and we see no parent) or waits and cascades this task.
	var parent string
	err = tx.GetContext(ctx, &parent, s.q(`
		SELECT id FROM projects WHERE id = ? AND owner_id = ?`+s.shareLock()), t.ProjectID, t.OwnerID)
	if err != nil {
		return task.Task{}, notFound(err)
	}

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), t.ID, t.OwnerID, t.ProjectID, t.Title, t.Description, string(t.Priority), string(t.Status), t.DueDate, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}

	if err = tx.Commit(); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (s *Store) GetTask(ctx context.Context, ownerID, id string) (task.Task, error) {
	var t task.Task
	err := s.db.GetContext(ctx, &t, s.q(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return task.Task{}, notFound(err)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	where, args := taskWhere(filter)
	result := make([]task.Task, 0)
	err := s.db.SelectContext(ctx, &result, s.q(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE `+where+`
		ORDER BY created_at DESC
	`), args...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) UpdateTask(ctx context.Context, ownerID, id string, upd task.Update) (task.Task, error) {
	sets := []string{"title = ?", "updated_at = ?"}
	args := []any{upd.Title, s.now()}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*upd.Priority))
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	switch upd.DueDate {
	case task.DueDateSet:
		sets = append(sets, "due_date = ?")
		args = append(args, upd.DueDateAt.UTC())
	case task.DueDateClear:
		sets = append(sets, "due_date = NULL")
	}
	args = append(args, id, ownerID)

	result, err := s.db.ExecContext(ctx, s.q(`
		UPDATE tasks
		SET `+strings.Join(sets, ", ")+`
		WHERE id = ? AND owner_id = ?
	`), args...)
	if err != nil {
		return task.Task{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return task.Task{}, storage.ErrNotFound
	}
	return s.GetTask(ctx, ownerID, id)
}

func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	result, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM tasks WHERE id = ? AND owner_id = ?
	`), id, ownerID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TaskBreakdown(ctx context.Context, filter task.Filter) ([]task.Bucket, error) {
	where, args := taskWhere(filter)
	result := make([]task.Bucket, 0)
	err := s.db.SelectContext(ctx, &result, s.q(`
		SELECT status, priority, COUNT(*) AS count
		FROM tasks
		WHERE `+where+`
		GROUP BY status, priority
	`), args...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) DeleteOrphanTasks(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE NOT EXISTS (
			SELECT 1 FROM projects p
			WHERE p.id = tasks.project_id AND p.owner_id = tasks.owner_id
		)
	`)
	if err != nil {
		return 0, err
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (s *Store) shareLock() string {
	if s.db.DriverName() == "postgres" {
		return " FOR SHARE"
	}
	// SQLite serialises writers at the database level.
	return ""
}

func taskWhere(filter task.Filter) (string, []any) {
	if filter.ProjectID == "" {
		return "owner_id = ?", []any{filter.OwnerID}
	}
	return "owner_id = ? AND project_id = ?", []any{filter.OwnerID, filter.ProjectID}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
