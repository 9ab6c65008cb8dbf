package main

import (
	"fmt"

	"github.com/hatvoni/hatvoni/internal/config"
	"github.com/hatvoni/hatvoni/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Cross-collection reports",
		Long: `Reports that combine projects, tasks and team members.

Reports read from a SQLite index under <data-dir>/cache/index.db. The
index is rebuilt from the JSON files whenever they change and can be
deleted at any time.`,
	}

	cmd.AddCommand(
		newReportWorkloadCmd(a),
		newReportProjectsCmd(a),
		newReportUnassignedCmd(a),
	)
	return cmd
}

// openIndex opens the report index and brings it up to date with the
// JSON documents.
func (a *app) openIndex() (*storage.Index, error) {
	dir, err := a.dataDir()
	if err != nil {
		return nil, err
	}
	paths := []string{config.ProjectsPath(dir), config.TasksPath(dir), config.TeamPath(dir)}

	hash, err := storage.SourceHash(paths...)
	if err != nil {
		return nil, withExit(ExitDataError, err)
	}

	idx, err := storage.OpenIndex(config.IndexPath(dir))
	if err != nil {
		return nil, withExit(ExitDataError, err)
	}

	stale, err := idx.NeedsSync(hash)
	if err != nil {
		idx.Close()
		return nil, withExit(ExitDataError, err)
	}
	if !stale {
		a.logger.Debug("report index up to date", zap.String("hash", hash))
		return idx, nil
	}

	if err := a.syncIndex(idx, hash); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func (a *app) syncIndex(idx *storage.Index, hash string) error {
	projects, err := a.openProjects()
	if err != nil {
		return err
	}
	tasks, err := a.openTasks()
	if err != nil {
		return err
	}
	members, err := a.openTeam()
	if err != nil {
		return err
	}

	if err := idx.Sync(projects.List(), tasks.List(), members.List(), hash); err != nil {
		return withExit(ExitDataError, fmt.Errorf("rebuilding report index: %w", err))
	}
	a.logger.Debug("report index rebuilt", zap.String("hash", hash))
	return nil
}

func newReportWorkloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Open and completed task counts per member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			rows, err := idx.Workload()
			if err != nil {
				return withExit(ExitDataError, err)
			}
			if rows == nil {
				rows = []storage.MemberWorkload{}
			}

			if a.jsonOutput {
				a.printJSON(rows)
				return nil
			}
			if len(rows) == 0 {
				a.printf("No team members found.\n")
				return nil
			}
			a.printf("\nWorkload:\n")
			for _, w := range rows {
				name := w.Name
				if name == "" {
					name = "(not a team member)"
				}
				a.printf("  [%s] %s - %d open, %d completed (%s)\n",
					w.MemberID, name, w.Open, w.Completed, pluralize(w.Total, "task"))
			}
			return nil
		},
	}
}

func newReportProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Task progress per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			rows, err := idx.ProjectProgress()
			if err != nil {
				return withExit(ExitDataError, err)
			}
			if rows == nil {
				rows = []storage.ProjectProgress{}
			}

			if a.jsonOutput {
				a.printJSON(rows)
				return nil
			}
			if len(rows) == 0 {
				a.printf("No projects found.\n")
				return nil
			}
			a.printf("\nProject Progress:\n")
			for _, p := range rows {
				a.printf("  [%s] %s - %s\n", p.ProjectID, p.Name, p.Status)
				a.printf("    Tasks: %d/%d completed (%.0f%%)\n", p.CompletedTasks, p.Tasks, p.PercentDone)
				a.printf("    Milestones: %d\n", p.Milestones)
			}
			return nil
		},
	}
}

func newReportUnassignedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unassigned",
		Short: "Tasks with no assignee, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			rows, err := idx.UnassignedTasks()
			if err != nil {
				return withExit(ExitDataError, err)
			}
			if rows == nil {
				rows = []storage.UnassignedTask{}
			}

			if a.jsonOutput {
				a.printJSON(rows)
				return nil
			}
			if len(rows) == 0 {
				a.printf("No unassigned tasks.\n")
				return nil
			}
			a.printf("\nUnassigned Tasks:\n")
			for _, t := range rows {
				a.printf("  [%s] %s - %s\n", t.TaskID, t.Title, t.Priority)
				a.printf("    Project: %s | Status: %s\n", t.ProjectID, t.Status)
			}
			return nil
		},
	}
}
