package storage

import (
	"time"

	"github.com/hatvoni/hatvoni/internal/project"
	"github.com/hatvoni/hatvoni/internal/store"
)

// ProjectStore owns the projects document.
type ProjectStore struct {
	table *store.Table[project.Project]
	now   func() time.Time
}

// OpenProjects loads the projects document at path.
func OpenProjects(path string, opts ...Option) (*ProjectStore, error) {
	o := buildOptions(opts)
	table, err := store.Open[project.Project](path, ProjectsField, o.tableOptions()...)
	if err != nil {
		return nil, err
	}
	return &ProjectStore{table: table, now: o.now}, nil
}

// Path returns the backing file path.
func (s *ProjectStore) Path() string { return s.table.Path() }

// Add inserts a new project. Fails with store.ErrDuplicateID if the id exists.
func (s *ProjectStore) Add(p project.Project) error {
	return s.table.Add(p)
}

// Get returns the project with the given id.
func (s *ProjectStore) Get(id string) (project.Project, bool) {
	return s.table.Get(id)
}

// List returns all projects in insertion order.
func (s *ProjectStore) List() []project.Project {
	return s.table.List()
}

// ByStatus returns the projects whose status equals status.
func (s *ProjectStore) ByStatus(status project.Status) []project.Project {
	return s.table.Filter(func(p project.Project) bool { return p.Status == status })
}

// UpdateStatus replaces a project's status.
func (s *ProjectStore) UpdateStatus(id string, status project.Status) error {
	return s.table.Update(id, func(p *project.Project) bool {
		p.Status = status
		return true
	})
}

// AddMilestone appends a milestone stamped with the current time.
func (s *ProjectStore) AddMilestone(id, description string) error {
	return s.table.Update(id, func(p *project.Project) bool {
		p.AddMilestone(description, s.now())
		return true
	})
}
