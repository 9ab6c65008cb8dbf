package main

import (
	"fmt"
	"strings"

	"github.com/hatvoni/hatvoni/internal/config"
	"github.com/hatvoni/hatvoni/internal/task"
	"github.com/hatvoni/hatvoni/internal/team"
	"github.com/spf13/cobra"
)

// MemberResult is the response for team commands that change a member.
type MemberResult struct {
	Status string      `json:"status"`
	Member team.Member `json:"member"`
}

// MemberListResult is the response for the team list command.
type MemberListResult struct {
	Members []team.Member `json:"members"`
	Count   int           `json:"count"`
}

// MemberDetail is the response for team get.
type MemberDetail struct {
	Member team.Member `json:"member"`
	Tasks  []task.Task `json:"tasks"`
}

func newTeamCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team members",
	}

	cmd.AddCommand(
		newTeamAddCmd(a),
		newTeamGetCmd(a),
		newTeamListCmd(a),
		newTeamRoleCmd(a),
		newTeamSkillCmd(a),
	)
	return cmd
}

func newTeamAddCmd(a *app) *cobra.Command {
	var role string
	var skills []string

	cmd := &cobra.Command{
		Use:   "add <id> <name> <email>",
		Short: "Add a new team member",
		Long: `Add a new team member.

Without --role the member gets default_role from the global config,
or "developer" when that is unset.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, email := args[0], args[1], args[2]

			m := team.NewMember(id, name, email, a.now())
			if role != "" {
				m.Role = team.Role(role)
			} else {
				m.Role = config.GetDefaultRole()
			}
			if !m.Role.Known() {
				a.warnf("unrecognized role %q (known: %s)", m.Role, joinTags(team.KnownRoles))
			}
			for _, s := range skills {
				if s = strings.TrimSpace(s); s != "" {
					m.AddSkill(s)
				}
			}

			members, err := a.openTeam()
			if err != nil {
				return err
			}
			if err := members.Add(m); err != nil {
				return recordError("team member", id, err)
			}

			if a.jsonOutput {
				a.printJSON(MemberResult{Status: "created", Member: m})
			} else {
				a.printf("Team member '%s' added successfully!\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Role (default from config, else \"developer\")")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Skill to record (repeatable or comma-separated)")
	return cmd
}

func newTeamGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a member and the tasks assigned to them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.openTeam()
			if err != nil {
				return err
			}
			m, ok := members.Get(args[0])
			if !ok {
				return withExit(ExitNotFound, fmt.Errorf("team member with ID '%s' not found", args[0]))
			}

			tasks, err := a.openTasks()
			if err != nil {
				return err
			}
			assigned := tasks.ByAssignee(m.ID)

			if a.jsonOutput {
				a.printJSON(MemberDetail{Member: m, Tasks: assigned})
				return nil
			}

			a.printf("[%s] %s - %s\n", m.ID, m.Name, m.Role)
			a.printf("  Email: %s\n", m.Email)
			if len(m.Skills) > 0 {
				a.printf("  Skills: %s\n", strings.Join(m.Skills, ", "))
			}
			a.printf("  Joined: %s\n", m.JoinedAt)
			if len(assigned) == 0 {
				a.printf("  Tasks: none\n")
				return nil
			}
			a.printf("  Tasks (%s):\n", pluralize(len(assigned), "task"))
			for _, t := range assigned {
				a.printf("    [%s] %s - %s (%s)\n", t.ID, t.Title, t.Status, t.Priority)
			}
			return nil
		},
	}
}

func newTeamListCmd(a *app) *cobra.Command {
	var role, skill string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.openTeam()
			if err != nil {
				return err
			}

			var list []team.Member
			switch {
			case role != "" && skill != "":
				for _, m := range members.ByRole(team.Role(role)) {
					if m.HasSkill(skill) {
						list = append(list, m)
					}
				}
			case role != "":
				list = members.ByRole(team.Role(role))
			case skill != "":
				list = members.BySkill(skill)
			default:
				list = members.List()
			}
			if list == nil {
				list = []team.Member{}
			}

			if a.jsonOutput {
				a.printJSON(MemberListResult{Members: list, Count: len(list)})
				return nil
			}

			if len(list) == 0 {
				a.printf("No team members found.\n")
				return nil
			}
			a.printf("\nTeam Members:\n")
			for _, m := range list {
				a.printf("  [%s] %s - %s\n", m.ID, m.Name, m.Role)
				a.printf("    Email: %s\n", m.Email)
				if len(m.Skills) > 0 {
					a.printf("    Skills: %s\n", strings.Join(m.Skills, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Only members with this role")
	cmd.Flags().StringVar(&skill, "skill", "", "Only members with this skill")
	return cmd
}

func newTeamRoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "role <id> <role>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, role := args[0], team.Role(args[1])

			members, err := a.openTeam()
			if err != nil {
				return err
			}
			if err := members.UpdateRole(id, role); err != nil {
				return recordError("team member", id, err)
			}
			if !role.Known() {
				a.warnf("unrecognized role %q (known: %s)", role, joinTags(team.KnownRoles))
			}

			if a.jsonOutput {
				m, _ := members.Get(id)
				a.printJSON(MemberResult{Status: "updated", Member: m})
			} else {
				a.printf("Role of '%s' updated to '%s'\n", id, role)
			}
			return nil
		},
	}
}

func newTeamSkillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "skill <id> <skill>",
		Short: "Add a skill to a member",
		Long:  `Add a skill to a member. Adding a skill the member already has is a no-op.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, skill := args[0], strings.TrimSpace(args[1])
			if skill == "" {
				return withExit(ExitError, fmt.Errorf("skill must not be empty"))
			}

			members, err := a.openTeam()
			if err != nil {
				return err
			}
			if err := members.AddSkill(id, skill); err != nil {
				return recordError("team member", id, err)
			}

			if a.jsonOutput {
				m, _ := members.Get(id)
				a.printJSON(MemberResult{Status: "updated", Member: m})
			} else {
				a.printf("Skill '%s' added to '%s'\n", skill, id)
			}
			return nil
		},
	}
}
