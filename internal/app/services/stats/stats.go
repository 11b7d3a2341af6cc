// Package stats reduces grouped task counts into the dashboard and project
// progress views.
package stats

import (
	"math"

	"github.com/taskboard/tracker/internal/app/domain/task"
)

// StatusCounts breaks tasks down by status.
type StatusCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// PriorityCounts breaks tasks down by priority.
type PriorityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Dashboard summarises every task an identity owns. TotalTasks always equals
// the sum of ByStatus and of ByPriority, and PendingTasks is TotalTasks minus
// CompletedTasks.
type Dashboard struct {
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	PendingTasks   int            `json:"pendingTasks"`
	ByStatus       StatusCounts   `json:"byStatus"`
	ByPriority     PriorityCounts `json:"byPriority"`
}

// Progress is the completion state of a single project.
type Progress struct {
	TotalTasks int `json:"totalTasks"`
	DoneTasks  int `json:"doneTasks"`
}

// Percent returns the rounded completion percentage, 0 for an empty project.
func (p Progress) Percent() int {
	if p.TotalTasks <= 0 {
		return 0
	}
	return int(math.Round(float64(p.DoneTasks) / float64(p.TotalTasks) * 100))
}

// Summarize folds buckets into a Dashboard in a single pass. Buckets with an
// unknown status or priority still count towards the total.
func Summarize(buckets []task.Bucket) Dashboard {
	var d Dashboard
	for _, b := range buckets {
		if b.Count <= 0 {
			continue
		}
		d.TotalTasks += b.Count

		switch b.Status {
		case task.StatusTodo:
			d.ByStatus.Todo += b.Count
		case task.StatusInProgress:
			d.ByStatus.InProgress += b.Count
		case task.StatusDone:
			d.ByStatus.Done += b.Count
		}

		switch b.Priority {
		case task.PriorityLow:
			d.ByPriority.Low += b.Count
		case task.PriorityMedium:
			d.ByPriority.Medium += b.Count
		case task.PriorityHigh:
			d.ByPriority.High += b.Count
		}
	}
	d.CompletedTasks = d.ByStatus.Done
	d.PendingTasks = d.TotalTasks - d.CompletedTasks
	return d
}

// ProgressOf reduces buckets for one project.
func ProgressOf(buckets []task.Bucket) Progress {
	d := Summarize(buckets)
	return Progress{TotalTasks: d.TotalTasks, DoneTasks: d.CompletedTasks}
}
