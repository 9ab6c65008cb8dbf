package main

import (
	"fmt"

	"github.com/hatvoni/hatvoni/internal/project"
	"github.com/hatvoni/hatvoni/internal/timefmt"
	"github.com/spf13/cobra"
)

// ProjectResult is the response for project commands that change a project.
type ProjectResult struct {
	Status  string          `json:"status"`
	Project project.Project `json:"project"`
}

// ProjectListResult is the response for the project list command.
type ProjectListResult struct {
	Projects []project.Project `json:"projects"`
	Count    int               `json:"count"`
}

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `Commands for adding, listing and updating projects.`,
	}

	cmd.AddCommand(
		newProjectAddCmd(a),
		newProjectGetCmd(a),
		newProjectListCmd(a),
		newProjectStatusCmd(a),
		newProjectMilestoneCmd(a),
	)
	return cmd
}

func newProjectAddCmd(a *app) *cobra.Command {
	var status, startDate string

	cmd := &cobra.Command{
		Use:   "add <id> <name> <description>",
		Short: "Add a new project",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, description := args[0], args[1], args[2]

			p := project.New(id, name, description, a.now())
			if status != "" {
				p.Status = project.Status(status)
				if !p.Status.Known() {
					a.warnf("unrecognized project status %q (known: %s)", status, joinTags(project.KnownStatuses))
				}
			}
			if startDate != "" {
				if _, err := timefmt.ParseDate(startDate); err != nil {
					return withExit(ExitError, fmt.Errorf("invalid start date %q: want YYYY-MM-DD", startDate))
				}
				p.StartDate = startDate
			}

			projects, err := a.openProjects()
			if err != nil {
				return err
			}
			if err := projects.Add(p); err != nil {
				return recordError("project", id, err)
			}

			if a.jsonOutput {
				a.printJSON(ProjectResult{Status: "created", Project: p})
			} else {
				a.printf("Project '%s' added successfully!\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Initial status (default \"planning\")")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date as YYYY-MM-DD (default today)")
	return cmd
}

func newProjectGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project and its milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.openProjects()
			if err != nil {
				return err
			}

			p, ok := projects.Get(args[0])
			if !ok {
				return withExit(ExitNotFound, fmt.Errorf("project with ID '%s' not found", args[0]))
			}

			if a.jsonOutput {
				a.printJSON(p)
				return nil
			}

			a.printf("[%s] %s - %s\n", p.ID, p.Name, p.Status)
			a.printf("  Description: %s\n", p.Description)
			a.printf("  Started: %s\n", p.StartDate)
			a.printf("  Created: %s\n", p.CreatedAt)
			if len(p.Milestones) == 0 {
				a.printf("  Milestones: none\n")
				return nil
			}
			a.printf("  Milestones:\n")
			for i, m := range p.Milestones {
				a.printf("    %d. %s (%s)\n", i+1, m.Description, m.AddedAt)
			}
			return nil
		},
	}
}

func newProjectListCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.openProjects()
			if err != nil {
				return err
			}

			var list []project.Project
			if status != "" {
				list = projects.ByStatus(project.Status(status))
			} else {
				list = projects.List()
			}

			if a.jsonOutput {
				a.printJSON(ProjectListResult{Projects: list, Count: len(list)})
				return nil
			}

			if len(list) == 0 {
				a.printf("No projects found.\n")
				return nil
			}
			a.printf("\nProjects:\n")
			for _, p := range list {
				a.printf("  [%s] %s - %s\n", p.ID, p.Name, p.Status)
				a.printf("    Description: %s\n", p.Description)
				a.printf("    Started: %s\n", p.StartDate)
				if len(p.Milestones) > 0 {
					a.printf("    Milestones: %d\n", len(p.Milestones))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only list projects with this status")
	return cmd
}

func newProjectStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Update project status",
		Long: `Replace a project's status. Any value is accepted; the usual ones are
planning, active, on_hold, completed and cancelled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], project.Status(args[1])

			projects, err := a.openProjects()
			if err != nil {
				return err
			}
			if err := projects.UpdateStatus(id, status); err != nil {
				return recordError("project", id, err)
			}
			if !status.Known() {
				a.warnf("unrecognized project status %q (known: %s)", status, joinTags(project.KnownStatuses))
			}

			if a.jsonOutput {
				p, _ := projects.Get(id)
				a.printJSON(ProjectResult{Status: "updated", Project: p})
			} else {
				a.printf("Project status updated to '%s'\n", status)
			}
			return nil
		},
	}
}

func newProjectMilestoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "milestone <id> <description>",
		Short: "Append a milestone to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, description := args[0], args[1]

			projects, err := a.openProjects()
			if err != nil {
				return err
			}
			if err := projects.AddMilestone(id, description); err != nil {
				return recordError("project", id, err)
			}

			if a.jsonOutput {
				p, _ := projects.Get(id)
				a.printJSON(ProjectResult{Status: "updated", Project: p})
			} else {
				a.printf("Milestone added to project '%s'\n", id)
			}
			return nil
		},
	}
}
