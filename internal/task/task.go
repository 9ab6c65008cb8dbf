// Package task defines the task record.
package task

import (
	"encoding/json"
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/timefmt"
)

// Priority is an open tag: values outside the known set are kept as-is.
type Priority string

// Known priorities, highest first.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// KnownPriorities lists the priorities in descending order of urgency.
var KnownPriorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities for sorting: 0 is most urgent, unknown values sort last.
func (p Priority) Rank() int {
	for i, k := range KnownPriorities {
		if p == k {
			return i
		}
	}
	return len(KnownPriorities)
}

// Known reports whether p is one of KnownPriorities.
func (p Priority) Known() bool {
	return p.Rank() < len(KnownPriorities)
}

// Status is an open tag: values outside the known set are kept as-is.
type Status string

// Known task statuses.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusCompleted  Status = "completed"
)

// KnownStatuses lists the statuses the CLI suggests.
var KnownStatuses = []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusCompleted}

// Known reports whether s is one of KnownStatuses.
func (s Status) Known() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Defaults for new tasks.
const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusTodo
)

// Task is a unit of work within a project.
// ProjectID and AssignedTo are plain references; they are never checked
// against the project or team stores.
type Task struct {
	ID          string   `json:"task_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectID   string   `json:"project_id"`
	AssignedTo  *string  `json:"assigned_to"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"created_at"` // YYYY-MM-DD HH:MM:SS
	UpdatedAt   string   `json:"updated_at"` // YYYY-MM-DD HH:MM:SS
}

// New returns an unassigned task with default priority and status.
func New(id, title, description, projectID string, now time.Time) Task {
	stamp := timefmt.DateTime(now)
	return Task{
		ID:          id,
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		Priority:    DefaultPriority,
		Status:      DefaultStatus,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}

// Key implements store.Record.
func (t Task) Key() string { return t.ID }

// Clone implements store.Record.
func (t Task) Clone() Task {
	if t.AssignedTo != nil {
		m := *t.AssignedTo
		t.AssignedTo = &m
	}
	return t
}

// Assignee returns the assigned member id, or "" when unassigned.
func (t Task) Assignee() string {
	if t.AssignedTo == nil {
		return ""
	}
	return *t.AssignedTo
}

// AssignTo sets the assignee and refreshes UpdatedAt.
func (t *Task) AssignTo(memberID string, now time.Time) {
	t.AssignedTo = &memberID
	t.UpdatedAt = timefmt.DateTime(now)
}

// SetStatus replaces the status and refreshes UpdatedAt.
func (t *Task) SetStatus(s Status, now time.Time) {
	t.Status = s
	t.UpdatedAt = timefmt.DateTime(now)
}

// UnmarshalJSON requires task_id, title, description and project_id.
func (t *Task) UnmarshalJSON(data []byte) error {
	if err := store.RequireFields(data, "task_id", "title", "description", "project_id"); err != nil {
		return err
	}

	type alias Task
	a := alias(New("", "", "", "", time.Now()))
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Task(a)
	return nil
}
