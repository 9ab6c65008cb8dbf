package storage

import (
	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/team"
)

// TeamStore owns the team members document.
type TeamStore struct {
	table *store.Table[team.Member]
}

// OpenTeam loads the team document at path.
func OpenTeam(path string, opts ...Option) (*TeamStore, error) {
	o := buildOptions(opts)
	table, err := store.Open[team.Member](path, MembersField, o.tableOptions()...)
	if err != nil {
		return nil, err
	}
	return &TeamStore{table: table}, nil
}

// Path returns the backing file path.
func (s *TeamStore) Path() string { return s.table.Path() }

// Add inserts a new member. Fails with store.ErrDuplicateID if the id exists.
func (s *TeamStore) Add(m team.Member) error {
	return s.table.Add(m)
}

// Get returns the member with the given id.
func (s *TeamStore) Get(id string) (team.Member, bool) {
	return s.table.Get(id)
}

// List returns all members in insertion order.
func (s *TeamStore) List() []team.Member {
	return s.table.List()
}

// ByRole returns the members whose role equals role.
func (s *TeamStore) ByRole(role team.Role) []team.Member {
	return s.table.Filter(func(m team.Member) bool { return m.Role == role })
}

// BySkill returns the members whose skill set contains skill.
func (s *TeamStore) BySkill(skill string) []team.Member {
	return s.table.Filter(func(m team.Member) bool { return m.HasSkill(skill) })
}

// UpdateRole replaces a member's role.
func (s *TeamStore) UpdateRole(id string, role team.Role) error {
	return s.table.Update(id, func(m *team.Member) bool {
		m.Role = role
		return true
	})
}

// AddSkill adds skill to a member. Adding a skill the member already has
// succeeds without writing.
func (s *TeamStore) AddSkill(id, skill string) error {
	return s.table.Update(id, func(m *team.Member) bool {
		return m.AddSkill(skill)
	})
}
