// Package team defines the team member record.
package team

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/timefmt"
)

// Role is an open tag: values outside the known set are kept as-is.
type Role string

// Known roles.
const (
	RoleDeveloper      Role = "developer"
	RoleProjectManager Role = "project_manager"
	RoleDesigner       Role = "designer"
	RoleTester         Role = "tester"
)

// DefaultRole is assigned when no role is given.
const DefaultRole = RoleDeveloper

// KnownRoles lists the roles the CLI suggests.
var KnownRoles = []Role{RoleDeveloper, RoleProjectManager, RoleDesigner, RoleTester}

// Known reports whether r is one of KnownRoles.
func (r Role) Known() bool {
	return slices.Contains(KnownRoles, r)
}

// Member is a person who can be assigned tasks.
// Skills behave as an ordered set.
type Member struct {
	ID       string   `json:"member_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	Skills   []string `json:"skills"`
	JoinedAt string   `json:"joined_at"` // YYYY-MM-DD
}

// NewMember returns a member with the default role and no skills.
func NewMember(id, name, email string, now time.Time) Member {
	return Member{
		ID:       id,
		Name:     name,
		Email:    email,
		Role:     DefaultRole,
		Skills:   []string{},
		JoinedAt: timefmt.Date(now),
	}
}

// Key implements store.Record.
func (m Member) Key() string { return m.ID }

// Clone implements store.Record.
func (m Member) Clone() Member {
	m.Skills = append(make([]string, 0, len(m.Skills)), m.Skills...)
	return m
}

// HasSkill reports whether skill is in the member's skill set.
func (m Member) HasSkill(skill string) bool {
	return slices.Contains(m.Skills, skill)
}

// AddSkill appends skill unless already present. Reports whether it was added.
func (m *Member) AddSkill(skill string) bool {
	if m.HasSkill(skill) {
		return false
	}
	m.Skills = append(m.Skills, skill)
	return true
}

// MarshalJSON writes skills as [] rather than null.
func (m Member) MarshalJSON() ([]byte, error) {
	type alias Member
	a := alias(m)
	if a.Skills == nil {
		a.Skills = []string{}
	}
	return json.Marshal(a)
}

// UnmarshalJSON requires member_id, name and email.
func (m *Member) UnmarshalJSON(data []byte) error {
	if err := store.RequireFields(data, "member_id", "name", "email"); err != nil {
		return err
	}

	type alias Member
	a := alias(NewMember("", "", "", time.Now()))
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Skills == nil {
		a.Skills = []string{}
	}
	*m = Member(a)
	return nil
}
