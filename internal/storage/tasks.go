package storage

import (
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/task"
)

// TaskStore owns the tasks document.
type TaskStore struct {
	table *store.Table[task.Task]
	now   func() time.Time
}

// OpenTasks loads the tasks document at path.
func OpenTasks(path string, opts ...Option) (*TaskStore, error) {
	o := buildOptions(opts)
	table, err := store.Open[task.Task](path, TasksField, o.tableOptions()...)
	if err != nil {
		return nil, err
	}
	return &TaskStore{table: table, now: o.now}, nil
}

// Path returns the backing file path.
func (s *TaskStore) Path() string { return s.table.Path() }

// Add inserts a new task. Fails with store.ErrDuplicateID if the id exists.
func (s *TaskStore) Add(t task.Task) error {
	return s.table.Add(t)
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id string) (task.Task, bool) {
	return s.table.Get(id)
}

// List returns all tasks in insertion order.
func (s *TaskStore) List() []task.Task {
	return s.table.List()
}

// ByProject returns the tasks referencing projectID.
func (s *TaskStore) ByProject(projectID string) []task.Task {
	return s.table.Filter(func(t task.Task) bool { return t.ProjectID == projectID })
}

// ByAssignee returns the tasks assigned to memberID.
func (s *TaskStore) ByAssignee(memberID string) []task.Task {
	return s.table.Filter(func(t task.Task) bool {
		return t.AssignedTo != nil && *t.AssignedTo == memberID
	})
}

// ByStatus returns the tasks whose status equals status.
func (s *TaskStore) ByStatus(status task.Status) []task.Task {
	return s.table.Filter(func(t task.Task) bool { return t.Status == status })
}

// UpdateStatus replaces a task's status and refreshes updated_at.
func (s *TaskStore) UpdateStatus(id string, status task.Status) error {
	return s.table.Update(id, func(t *task.Task) bool {
		t.SetStatus(status, s.now())
		return true
	})
}

// Assign sets a task's assignee and refreshes updated_at.
// memberID is not checked against the team store.
func (s *TaskStore) Assign(id, memberID string) error {
	return s.table.Update(id, func(t *task.Task) bool {
		t.AssignTo(memberID, s.now())
		return true
	})
}
