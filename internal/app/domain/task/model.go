package task

import "time"

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid priority.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

const (
	MaxTitleLength       = 160
	MaxDescriptionLength = 5000
)

// Task belongs to a project. OwnerID always equals the owner of ProjectID at
// creation time; no endpoint moves a task between projects.
type Task struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"ownerId" db:"owner_id"`
	ProjectID   string     `json:"projectId" db:"project_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Status      Status     `json:"status" db:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// WithDefaults fills in the default priority and status.
func (t Task) WithDefaults() Task {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusTodo
	}
	return t
}

// DueDateChange describes what an update does to the due date.
type DueDateChange int

const (
	DueDateKeep DueDateChange = iota
	DueDateSet
	DueDateClear
)

// Update carries the mutable fields of a task. Nil pointers leave the stored
// value unchanged.
type Update struct {
	Title       string
	Description *string
	Priority    *Priority
	Status      *Status
	DueDate     DueDateChange
	DueDateAt   time.Time
}

// Apply returns t with the update applied.
func (u Update) Apply(t Task) Task {
	t.Title = u.Title
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	switch u.DueDate {
	case DueDateSet:
		due := u.DueDateAt.UTC()
		t.DueDate = &due
	case DueDateClear:
		t.DueDate = nil
	}
	return t
}

// Filter scopes a task query. OwnerID is mandatory; ProjectID is optional.
type Filter struct {
	OwnerID   string
	ProjectID string
}

// Bucket is the number of tasks sharing a status and priority.
type Bucket struct {
	Status   Status   `db:"status"`
	Priority Priority `db:"priority"`
	Count    int      `db:"count"`
}
