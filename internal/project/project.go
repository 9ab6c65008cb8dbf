// Package project defines the project record and its milestones.
package project

import (
	"encoding/json"
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/timefmt"
)

// Status is an open tag: values outside the known set are kept as-is.
type Status string

// Known project statuses.
const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DefaultStatus is assigned to new projects.
const DefaultStatus = StatusPlanning

// KnownStatuses lists the statuses the CLI suggests.
var KnownStatuses = []Status{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled}

// Known reports whether s is one of KnownStatuses.
func (s Status) Known() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Milestone is an append-only entry on a project's timeline.
type Milestone struct {
	Description string `json:"description"`
	AddedAt     string `json:"added_at"` // YYYY-MM-DD HH:MM:SS
}

// Project is a tracked unit of work.
type Project struct {
	ID          string      `json:"project_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      Status      `json:"status"`
	StartDate   string      `json:"start_date"` // YYYY-MM-DD
	Milestones  []Milestone `json:"milestones"`
	CreatedAt   string      `json:"created_at"` // YYYY-MM-DD HH:MM:SS
}

// New returns a project in the default status, starting on the day of now.
func New(id, name, description string, now time.Time) Project {
	return Project{
		ID:          id,
		Name:        name,
		Description: description,
		Status:      DefaultStatus,
		StartDate:   timefmt.Date(now),
		Milestones:  []Milestone{},
		CreatedAt:   timefmt.DateTime(now),
	}
}

// Key implements store.Record.
func (p Project) Key() string { return p.ID }

// Clone implements store.Record.
func (p Project) Clone() Project {
	p.Milestones = append(make([]Milestone, 0, len(p.Milestones)), p.Milestones...)
	return p
}

// AddMilestone appends a milestone stamped with now.
func (p *Project) AddMilestone(description string, now time.Time) {
	p.Milestones = append(p.Milestones, Milestone{
		Description: description,
		AddedAt:     timefmt.DateTime(now),
	})
}

// MarshalJSON writes milestones as [] rather than null.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	a := alias(p)
	if a.Milestones == nil {
		a.Milestones = []Milestone{}
	}
	return json.Marshal(a)
}

// UnmarshalJSON requires project_id, name and description; every other
// field falls back to the value New would give it.
func (p *Project) UnmarshalJSON(data []byte) error {
	if err := store.RequireFields(data, "project_id", "name", "description"); err != nil {
		return err
	}

	type alias Project
	a := alias(New("", "", "", time.Now()))
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Milestones == nil {
		a.Milestones = []Milestone{}
	}
	*p = Project(a)
	return nil
}
