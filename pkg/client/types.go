package client

import "time"

// User is the public view of a registered identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Session is returned by Register and Login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Progress counts a project's tasks.
type Progress struct {
	TotalTasks int `json:"totalTasks"`
	DoneTasks  int `json:"doneTasks"`
}

// ProjectDetail is a project with its completion.
type ProjectDetail struct {
	Project         Project  `json:"project"`
	Progress        Progress `json:"progress"`
	PercentComplete int      `json:"percentComplete"`
}

type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectInput is the body of project create and update calls.
type ProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// NewTask is the body of CreateTask. Empty optional fields take server
// defaults.
type NewTask struct {
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// TaskChanges is the body of UpdateTask. Nil fields are left unchanged.
// ClearDueDate removes the due date and wins over DueDate.
type TaskChanges struct {
	Title        string
	Description  *string
	Priority     *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

func (c TaskChanges) body() map[string]any {
	out := map[string]any{"title": c.Title}
	if c.Description != nil {
		out["description"] = *c.Description
	}
	if c.Priority != nil {
		out["priority"] = *c.Priority
	}
	if c.Status != nil {
		out["status"] = *c.Status
	}
	switch {
	case c.ClearDueDate:
		out["dueDate"] = nil
	case c.DueDate != nil:
		out["dueDate"] = c.DueDate.UTC().Format(time.RFC3339Nano)
	}
	return out
}

// Dashboard aggregates the caller's tasks.
type Dashboard struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	PendingTasks   int `json:"pendingTasks"`
	ByStatus       struct {
		Todo       int `json:"todo"`
		InProgress int `json:"inProgress"`
		Done       int `json:"done"`
	} `json:"byStatus"`
	ByPriority struct {
		Low    int `json:"low"`
		Medium int `json:"medium"`
		High   int `json:"high"`
	} `json:"byPriority"`
}
