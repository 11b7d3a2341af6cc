package validation

import (
	"github.com/taskboard/tracker/internal/app/domain/project"
	"github.com/taskboard/tracker/internal/app/domain/task"
)

// MaxNameLength bounds an identity's display name.
const MaxNameLength = 80

// passwordMaxBytes is the bcrypt input limit.
const passwordMaxBytes = 72

var (
	Register = Schema{
		{Name: "name", Optional: true, Rules: []Rule{
			IsString("Name must be a string"), Trim(),
			Length(0, MaxNameLength, "Name must be at most 80 characters"),
		}},
		{Name: "email", Rules: []Rule{Email("Email is invalid")}},
		{Name: "password", Rules: []Rule{
			IsString("Password is required"),
			Length(6, 0, "Password must be at least 6 characters"),
			MaxBytes(passwordMaxBytes, "Password must be at most 72 bytes"),
		}},
	}

	Login = Schema{
		{Name: "email", Rules: []Rule{Email("Email is invalid")}},
		{Name: "password", Rules: []Rule{IsString("Password is required")}},
	}

	ProjectID = Schema{
		{Name: "id", Rules: []Rule{ResourceID("Invalid project id")}},
	}

	CreateProject = Schema{
		projectName,
		projectDescription,
	}

	UpdateProject = Schema{
		{Name: "id", Rules: []Rule{ResourceID("Invalid project id")}},
		projectName,
		projectDescription,
	}

	TaskID = Schema{
		{Name: "id", Rules: []Rule{ResourceID("Invalid task id")}},
	}

	ListTasks = Schema{
		{Name: "projectId", Optional: true, Rules: []Rule{ResourceID("Invalid projectId")}},
	}

	CreateTask = Schema{
		{Name: "projectId", Rules: []Rule{ResourceID("projectId is required")}},
		taskTitle,
		taskDescription,
		taskPriority,
		taskStatus,
		{Name: "dueDate", Optional: true, Rules: []Rule{ISODate("dueDate must be a valid date")}},
	}

	UpdateTask = Schema{
		{Name: "id", Rules: []Rule{ResourceID("Invalid task id")}},
		taskTitle,
		taskDescription,
		taskPriority,
		taskStatus,
		{Name: "dueDate", Optional: true, Nullable: true, Rules: []Rule{NullableISODate("dueDate must be a valid date")}},
	}
)

var (
	projectName = Field{Name: "name", Rules: []Rule{
		IsString("Name is required"), Trim(),
		Length(1, project.MaxNameLength, "Name must be between 1 and 120 characters"),
	}}
	projectDescription = Field{Name: "description", Optional: true, Rules: []Rule{
		IsString("Description must be a string"), Trim(),
		Length(0, project.MaxDescriptionLength, "Description must be at most 1000 characters"),
	}}

	taskTitle = Field{Name: "title", Rules: []Rule{
		IsString("Title is required"), Trim(),
		Length(1, task.MaxTitleLength, "Title must be between 1 and 160 characters"),
	}}
	taskDescription = Field{Name: "description", Optional: true, Rules: []Rule{
		IsString("Description must be a string"), Trim(),
		Length(0, task.MaxDescriptionLength, "Description must be at most 5000 characters"),
	}}
	taskPriority = Field{Name: "priority", Optional: true, Rules: []Rule{
		OneOf("Invalid priority", priorities()...),
	}}
	taskStatus = Field{Name: "status", Optional: true, Rules: []Rule{
		OneOf("Invalid status", statuses()...),
	}}
)

func priorities() []string {
	out := make([]string, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		out = append(out, string(p))
	}
	return out
}

func statuses() []string {
	out := make([]string, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		out = append(out, string(s))
	}
	return out
}
