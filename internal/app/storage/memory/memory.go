package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/tracker/internal/app/domain/identity"
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
	"github.com/taskboard/tracker/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
// A single lock covers all collections, so the project cascade and the
// conditional task insert are atomic.
type Store struct {
	mu         sync.RWMutex
	seq        int64
	now        func() time.Time
	identities map[string]identity.Identity
	byEmail    map[string]string
	projects   map[string]project.Project
	tasks      map[string]task.Task
	order      map[string]int64
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		now:        func() time.Time { return time.Now().UTC() },
		identities: make(map[string]identity.Identity),
		byEmail:    make(map[string]string),
		projects:   make(map[string]project.Project),
		tasks:      make(map[string]task.Task),
		order:      make(map[string]int64),
	}
}

// WithClock replaces the timestamp source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *Store) stampLocked(id string) {
	s.seq++
	s.order[id] = s.seq
}

// IdentityStore implementation ------------------------------------------------

func (s *Store) CreateIdentity(_ context.Context, ident identity.Identity) (identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(ident.Email)
	if _, exists := s.byEmail[key]; exists {
		return identity.Identity{}, storage.ErrDuplicate
	}
	if ident.ID == "" {
		ident.ID = uuid.NewString()
	}
	ident.CreatedAt = s.now()

	s.identities[ident.ID] = ident
	s.byEmail[key] = ident.ID
	return ident, nil
}

func (s *Store) GetIdentityByEmail(_ context.Context, email string) (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return identity.Identity{}, storage.ErrNotFound
	}
	return s.identities[id], nil
}

// ProjectStore implementation -------------------------------------------------

func (s *Store) CreateProject(_ context.Context, p project.Project) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.projects[p.ID] = p
	s.stampLocked(p.ID)
	return p, nil
}

func (s *Store) GetProject(_ context.Context, ownerID, id string) (project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ownedProjectLocked(ownerID, id)
}

func (s *Store) ownedProjectLocked(ownerID, id string) (project.Project, error) {
	p, ok := s.projects[id]
	if !ok || p.OwnerID != ownerID {
		return project.Project{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListProjects(_ context.Context, ownerID string) ([]project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]project.Project, 0)
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return s.newerLocked(result[i].ID, result[i].CreatedAt, result[j].ID, result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateProject(_ context.Context, ownerID, id string, upd project.Update) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.ownedProjectLocked(ownerID, id)
	if err != nil {
		return project.Project{}, err
	}
	p = upd.Apply(p)
	p.UpdatedAt = s.now()

	s.projects[id] = p
	return p, nil
}

func (s *Store) DeleteProject(_ context.Context, ownerID, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedProjectLocked(ownerID, id); err != nil {
		return 0, err
	}
	delete(s.projects, id)
	delete(s.order, id)

	removed := 0
	for taskID, t := range s.tasks {
		if t.OwnerID == ownerID && t.ProjectID == id {
			delete(s.tasks, taskID)
			delete(s.order, taskID)
			removed++
		}
	}
	return removed, nil
}

// TaskStore implementation ----------------------------------------------------

func (s *Store) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedProjectLocked(t.OwnerID, t.ProjectID); err != nil {
		return task.Task{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t = t.WithDefaults()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DueDate = cloneTime(t.DueDate)

	s.tasks[t.ID] = t
	s.stampLocked(t.ID)
	return cloneTask(t), nil
}

func (s *Store) GetTask(_ context.Context, ownerID, id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.ownedTaskLocked(ownerID, id)
	if err != nil {
		return task.Task{}, err
	}
	return cloneTask(t), nil
}

func (s *Store) ownedTaskLocked(ownerID, id string) (task.Task, error) {
	t, ok := s.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return task.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) ListTasks(_ context.Context, filter task.Filter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]task.Task, 0)
	for _, t := range s.tasks {
		if matches(t, filter) {
			result = append(result, cloneTask(t))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return s.newerLocked(result[i].ID, result[i].CreatedAt, result[j].ID, result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateTask(_ context.Context, ownerID, id string, upd task.Update) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.ownedTaskLocked(ownerID, id)
	if err != nil {
		return task.Task{}, err
	}
	t = upd.Apply(t)
	t.UpdatedAt = s.now()

	s.tasks[id] = t
	return cloneTask(t), nil
}

func (s *Store) DeleteTask(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.ownedTaskLocked(ownerID, id); err != nil {
		return err
	}
	delete(s.tasks, id)
	delete(s.order, id)
	return nil
}

func (s *Store) TaskBreakdown(_ context.Context, filter task.Filter) ([]task.Bucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		status   task.Status
		priority task.Priority
	}
	counts := make(map[key]int)
	for _, t := range s.tasks {
		if matches(t, filter) {
			counts[key{t.Status, t.Priority}]++
		}
	}

	result := make([]task.Bucket, 0, len(counts))
	for k, n := range counts {
		result = append(result, task.Bucket{Status: k.status, Priority: k.priority, Count: n})
	}
	return result, nil
}

func (s *Store) DeleteOrphanTasks(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, t := range s.tasks {
		p, ok := s.projects[t.ProjectID]
		if ok && p.OwnerID == t.OwnerID {
			continue
		}
		delete(s.tasks, id)
		delete(s.order, id)
		removed++
	}
	return removed, nil
}

// InsertTaskUnchecked stores t without the parent check. It exists so tests can
// reproduce data written before the conditional insert existed.
func (s *Store) InsertTaskUnchecked(t task.Task) task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t = t.WithDefaults()
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = t
	s.stampLocked(t.ID)
	return t
}

func (s *Store) newerLocked(idA string, createdA time.Time, idB string, createdB time.Time) bool {
	if !createdA.Equal(createdB) {
		return createdA.After(createdB)
	}
	return s.order[idA] > s.order[idB]
}

func matches(t task.Task, filter task.Filter) bool {
	if t.OwnerID != filter.OwnerID {
		return false
	}
	return filter.ProjectID == "" || t.ProjectID == filter.ProjectID
}

func cloneTask(t task.Task) task.Task {
	t.DueDate = cloneTime(t.DueDate)
	return t
}

func cloneTime(in *time.Time) *time.Time {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
