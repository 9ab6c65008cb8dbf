package main

import (
	"fmt"

	"github.com/hatvoni/hatvoni/internal/task"
	"github.com/spf13/cobra"
)

// TaskResult is the response for task commands that change a task.
type TaskResult struct {
	Status string    `json:"status"`
	Task   task.Task `json:"task"`
}

// TaskListResult is the response for the task list command.
type TaskListResult struct {
	Tasks []task.Task `json:"tasks"`
	Count int         `json:"count"`
}

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Commands for adding, listing, assigning and updating tasks.

Project and member ids on a task are stored as given; they are not
checked against the project or team data.`,
	}

	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskGetCmd(a),
		newTaskListCmd(a),
		newTaskAssignCmd(a),
		newTaskStatusCmd(a),
	)
	return cmd
}

func newTaskAddCmd(a *app) *cobra.Command {
	var priority, status, assignee string

	cmd := &cobra.Command{
		Use:   "add <id> <title> <description> <project_id>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, title, description, projectID := args[0], args[1], args[2], args[3]
			now := a.now()

			t := task.New(id, title, description, projectID, now)
			if priority != "" {
				t.Priority = task.Priority(priority)
				if !t.Priority.Known() {
					a.warnf("unrecognized priority %q (known: %s)", priority, joinTags(task.KnownPriorities))
				}
			}
			if status != "" {
				t.Status = task.Status(status)
				if !t.Status.Known() {
					a.warnf("unrecognized task status %q (known: %s)", status, joinTags(task.KnownStatuses))
				}
			}
			if assignee != "" {
				t.AssignTo(assignee, now)
			}

			tasks, err := a.openTasks()
			if err != nil {
				return err
			}
			if err := tasks.Add(t); err != nil {
				return recordError("task", id, err)
			}

			if a.jsonOutput {
				a.printJSON(TaskResult{Status: "created", Task: t})
			} else {
				a.printf("Task '%s' added successfully!\n", title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (default \"medium\")")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Initial status (default \"todo\")")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Member id to assign")
	return cmd
}

func newTaskGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.openTasks()
			if err != nil {
				return err
			}

			t, ok := tasks.Get(args[0])
			if !ok {
				return withExit(ExitNotFound, fmt.Errorf("task with ID '%s' not found", args[0]))
			}

			if a.jsonOutput {
				a.printJSON(t)
				return nil
			}
			a.printf("[%s] %s - %s\n", t.ID, t.Title, t.Status)
			a.printf("  Description: %s\n", t.Description)
			a.printf("  Project: %s | Assigned to: %s\n", t.ProjectID, orDefault(t.Assignee(), "Unassigned"))
			a.printf("  Priority: %s\n", t.Priority)
			a.printf("  Created: %s | Updated: %s\n", t.CreatedAt, t.UpdatedAt)
			return nil
		},
	}
}

func newTaskListCmd(a *app) *cobra.Command {
	var projectID, assignee, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  `List tasks in insertion order. Filters combine with AND.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.openTasks()
			if err != nil {
				return err
			}

			byProject := cmd.Flags().Changed("project")
			byAssignee := cmd.Flags().Changed("assignee")
			byStatus := cmd.Flags().Changed("status")

			// The first flag selects through the store; the others narrow.
			var list []task.Task
			switch {
			case byProject:
				list = tasks.ByProject(projectID)
				if byAssignee {
					list = keepTasks(list, func(t task.Task) bool { return t.AssignedTo != nil && *t.AssignedTo == assignee })
				}
				if byStatus {
					list = keepTasks(list, func(t task.Task) bool { return t.Status == task.Status(status) })
				}
			case byAssignee:
				list = tasks.ByAssignee(assignee)
				if byStatus {
					list = keepTasks(list, func(t task.Task) bool { return t.Status == task.Status(status) })
				}
			case byStatus:
				list = tasks.ByStatus(task.Status(status))
			default:
				list = tasks.List()
			}

			if a.jsonOutput {
				a.printJSON(TaskListResult{Tasks: list, Count: len(list)})
				return nil
			}

			if len(list) == 0 {
				a.printf("No tasks found.\n")
				return nil
			}
			a.printf("\nTasks:\n")
			for _, t := range list {
				a.printf("  [%s] %s - %s\n", t.ID, t.Title, t.Status)
				a.printf("    Project: %s | Assigned to: %s\n", t.ProjectID, orDefault(t.Assignee(), "Unassigned"))
				a.printf("    Priority: %s\n", t.Priority)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks for this project id")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only tasks assigned to this member id")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only tasks with this status")
	return cmd
}

// keepTasks filters an already-loaded task list, preserving order.
func keepTasks(tasks []task.Task, keep func(task.Task) bool) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func newTaskAssignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <task_id> <member_id>",
		Short: "Assign task to member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, memberID := args[0], args[1]

			tasks, err := a.openTasks()
			if err != nil {
				return err
			}
			if err := tasks.Assign(taskID, memberID); err != nil {
				return recordError("task", taskID, err)
			}

			if a.jsonOutput {
				t, _ := tasks.Get(taskID)
				a.printJSON(TaskResult{Status: "updated", Task: t})
			} else {
				a.printf("Task assigned to member '%s'\n", memberID)
			}
			return nil
		},
	}
}

func newTaskStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Update task status",
		Long: `Replace a task's status. Any value is accepted; the usual ones are
todo, in_progress, blocked and completed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], task.Status(args[1])

			tasks, err := a.openTasks()
			if err != nil {
				return err
			}
			if err := tasks.UpdateStatus(id, status); err != nil {
				return recordError("task", id, err)
			}
			if !status.Known() {
				a.warnf("unrecognized task status %q (known: %s)", status, joinTags(task.KnownStatuses))
			}

			if a.jsonOutput {
				t, _ := tasks.Get(id)
				a.printJSON(TaskResult{Status: "updated", Task: t})
			} else {
				a.printf("Task status updated to '%s'\n", status)
			}
			return nil
		},
	}
}
