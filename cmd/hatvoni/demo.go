package main

import (
	"errors"

	"github.com/hatvoni/hatvoni/internal/project"
	"github.com/hatvoni/hatvoni/internal/store"
	"github.com/hatvoni/hatvoni/internal/task"
	"github.com/hatvoni/hatvoni/internal/team"
	"github.com/spf13/cobra"
)

// DemoResult is the JSON response for the demo command.
type DemoResult struct {
	Members  []string `json:"members_added"`
	Projects []string `json:"projects_added"`
	Tasks    []string `json:"tasks_added"`
}

type demoMember struct {
	id, name, email string
	role            team.Role
	skills          []string
}

type demoTask struct {
	id, title, description, projectID, assignee string
	priority                                    task.Priority
	status                                      task.Status
}

var demoMembers = []demoMember{
	{"m001", "Alice Johnson", "alice@hatvoni.com", team.RoleProjectManager, []string{"leadership", "planning"}},
	{"m002", "Bob Smith", "bob@hatvoni.com", team.RoleDeveloper, []string{"python", "javascript"}},
	{"m003", "Carol Davis", "carol@hatvoni.com", team.RoleDesigner, []string{"ui/ux", "figma"}},
}

var demoMilestones = []string{
	"Complete initial design mockups",
	"Set up development environment",
	"Implement core features",
}

var demoTasks = []demoTask{
	{"t001", "Design homepage", "Create homepage design mockups", "p001", "m003", task.PriorityHigh, task.StatusInProgress},
	{"t002", "Set up backend API", "Initialize backend API structure", "p001", "m002", task.PriorityHigh, task.StatusTodo},
	{"t003", "Project planning", "Define project scope and timeline", "p001", "m001", task.PriorityMedium, task.StatusCompleted},
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed the data directory with sample records",
		Long: `Seed the data directory with three team members, one project with
three milestones and three tasks, then print a summary.

Records whose id already exists are left alone, so running demo twice
changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.openTeam()
			if err != nil {
				return err
			}
			projects, err := a.openProjects()
			if err != nil {
				return err
			}
			tasks, err := a.openTasks()
			if err != nil {
				return err
			}

			result := DemoResult{Members: []string{}, Projects: []string{}, Tasks: []string{}}
			now := a.now()
			say := func(format string, args ...interface{}) {
				if !a.jsonOutput {
					a.printf(format, args...)
				}
			}

			say("=== Hatvoni Management System Demo ===\n\n")

			say("1. Adding team members...\n")
			for _, dm := range demoMembers {
				m := team.NewMember(dm.id, dm.name, dm.email, now)
				m.Role = dm.role
				for _, s := range dm.skills {
					m.AddSkill(s)
				}
				added, err := addIfAbsent(members.Add(m))
				if err != nil {
					return recordError("team member", dm.id, err)
				}
				if added {
					result.Members = append(result.Members, m.ID)
					say("   Added: %s (%s)\n", m.Name, m.Role)
				}
			}

			say("\n2. Creating project...\n")
			p := project.New("p001", "Hatvoni Web Platform", "Development of the main web platform for Hatvoni services", now)
			p.Status = project.StatusActive
			added, err := addIfAbsent(projects.Add(p))
			if err != nil {
				return recordError("project", p.ID, err)
			}
			if added {
				result.Projects = append(result.Projects, p.ID)
				say("   Created: %s\n", p.Name)

				say("\n3. Adding project milestones...\n")
				for _, ms := range demoMilestones {
					if err := projects.AddMilestone(p.ID, ms); err != nil {
						return recordError("project", p.ID, err)
					}
					say("   Added milestone: %s\n", ms)
				}
			}

			say("\n4. Creating tasks...\n")
			for _, dt := range demoTasks {
				t := task.New(dt.id, dt.title, dt.description, dt.projectID, now)
				t.AssignTo(dt.assignee, now)
				t.Priority = dt.priority
				t.Status = dt.status
				added, err := addIfAbsent(tasks.Add(t))
				if err != nil {
					return recordError("task", dt.id, err)
				}
				if added {
					result.Tasks = append(result.Tasks, t.ID)
					say("   Created: %s (assigned to %s)\n", t.Title, orDefault(t.Assignee(), "unassigned"))
				}
			}

			if a.jsonOutput {
				a.printJSON(result)
				return nil
			}

			a.printf("\n=== Current Status ===\n")
			a.printf("\nProjects:\n")
			for _, p := range projects.List() {
				a.printf("  [%s] %s - Status: %s\n", p.ID, p.Name, p.Status)
				a.printf("    Milestones: %d\n", len(p.Milestones))
			}
			a.printf("\nTasks:\n")
			for _, t := range tasks.List() {
				a.printf("  [%s] %s\n", t.ID, t.Title)
				a.printf("    Status: %s | Priority: %s\n", t.Status, t.Priority)
			}
			a.printf("\nTeam Members:\n")
			for _, m := range members.List() {
				a.printf("  [%s] %s - %s\n", m.ID, m.Name, m.Role)
				a.printf("    Assigned tasks: %d\n", len(tasks.ByAssignee(m.ID)))
			}
			a.printf("\n=== Demo Complete ===\n")
			return nil
		},
	}
}

// addIfAbsent treats a duplicate id as "already seeded".
func addIfAbsent(err error) (bool, error) {
	if errors.Is(err, store.ErrDuplicateID) {
		return false, nil
	}
	return err == nil, err
}
