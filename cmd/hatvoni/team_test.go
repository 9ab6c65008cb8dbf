package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hatvoni/hatvoni/internal/config"
	"github.com/hatvoni/hatvoni/internal/team"
)

func TestTeamAdd(t *testing.T) {
	e := newCLIEnv(t)

	stdout := e.mustRun("team", "add", "m1", "Alice", "alice@example.com", "--role", "designer", "--skill", "figma,ui/ux", "--skill", "figma")
	if stdout != "Team member 'Alice' added successfully!\n" {
		t.Errorf("stdout = %q", stdout)
	}

	var d MemberDetail
	e.runJSON(&d, "team", "get", "m1")
	if d.Member.Role != team.RoleDesigner {
		t.Errorf("Role = %q", d.Member.Role)
	}
	if want := []string{"figma", "ui/ux"}; !reflect.DeepEqual(d.Member.Skills, want) {
		t.Errorf("Skills = %v, want %v", d.Member.Skills, want)
	}
	if len(d.Tasks) != 0 {
		t.Errorf("Tasks = %v, want none", d.Tasks)
	}
}

func TestTeamAdd_DefaultRole(t *testing.T) {
	e := newCLIEnv(t)

	e.mustRun("team", "add", "m1", "Bob", "bob@example.com")
	var d MemberDetail
	e.runJSON(&d, "team", "get", "m1")
	if d.Member.Role != team.RoleDeveloper {
		t.Errorf("Role = %q, want %q", d.Member.Role, team.RoleDeveloper)
	}

	// A configured default applies when --role is omitted.
	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), config.GlobalConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, config.GlobalConfigFile), []byte("default_role: tester\n"), 0644); err != nil {
		t.Fatal(err)
	}
	config.ResetGlobalConfigCache()

	e.mustRun("team", "add", "m2", "Carol", "carol@example.com")
	e.runJSON(&d, "team", "get", "m2")
	if d.Member.Role != team.RoleTester {
		t.Errorf("Role = %q, want %q", d.Member.Role, team.RoleTester)
	}
}

func TestTeamGet_ShowsAssignedTasks(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("team", "add", "m1", "Alice", "alice@example.com")
	e.mustRun("task", "add", "t1", "Homepage", "Design", "p1", "--assignee", "m1")
	e.mustRun("task", "add", "t2", "API", "Backend", "p1", "--assignee", "m2")

	out := e.mustRun("team", "get", "m1")
	assertContains(t, out, "[m1] Alice - developer\n")
	assertContains(t, out, "  Tasks (1 task):\n    [t1] Homepage - todo (medium)\n")

	if _, _, code := e.run("team", "get", "m9"); code != ExitNotFound {
		t.Errorf("unknown member: exit %d, want %d", code, ExitNotFound)
	}
}

func TestTeamList(t *testing.T) {
	e := newCLIEnv(t)

	if got := e.mustRun("team", "list"); got != "No team members found.\n" {
		t.Errorf("empty list = %q", got)
	}

	e.mustRun("team", "add", "m1", "Alice", "alice@example.com", "--role", "project_manager", "--skill", "planning")
	e.mustRun("team", "add", "m2", "Bob", "bob@example.com", "--skill", "go,sql")
	e.mustRun("team", "add", "m3", "Carol", "carol@example.com", "--skill", "sql")

	out := e.mustRun("team", "list")
	assertContains(t, out, "\nTeam Members:\n  [m1] Alice - project_manager\n    Email: alice@example.com\n    Skills: planning\n")
	assertContains(t, out, "    Skills: go, sql\n")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"by role", []string{"--role", "developer"}, []string{"m2", "m3"}},
		{"by skill", []string{"--skill", "sql"}, []string{"m2", "m3"}},
		{"role and skill", []string{"--role", "developer", "--skill", "go"}, []string{"m2"}},
		{"no match", []string{"--skill", "cobol"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res MemberListResult
			sub := &cliEnv{t: t, dataDir: e.dataDir}
			sub.runJSON(&res, append([]string{"team", "list"}, tt.args...)...)
			if res.Count != len(tt.want) || res.Members == nil {
				t.Fatalf("got %+v, want ids %v", res, tt.want)
			}
			for i, id := range tt.want {
				if res.Members[i].ID != id {
					t.Errorf("Members[%d] = %s, want %s", i, res.Members[i].ID, id)
				}
			}
		})
	}
}

func TestTeamRole(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("team", "add", "m1", "Alice", "alice@example.com")

	if got := e.mustRun("team", "role", "m1", "tester"); got != "Role of 'm1' updated to 'tester'\n" {
		t.Errorf("stdout = %q", got)
	}

	var res MemberResult
	e.runJSON(&res, "team", "role", "m1", "designer")
	if res.Member.Role != team.RoleDesigner {
		t.Errorf("Role = %q", res.Member.Role)
	}
}

func TestTeamSkill_Idempotent(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun("team", "add", "m1", "Alice", "alice@example.com", "--skill", "go")
	before := e.readFile(config.TeamFile)

	// Re-adding an existing skill succeeds and leaves the file alone.
	if got := e.mustRun("team", "skill", "m1", "go"); got != "Skill 'go' added to 'm1'\n" {
		t.Errorf("stdout = %q", got)
	}
	if after := e.readFile(config.TeamFile); !bytes.Equal(before, after) {
		t.Errorf("file changed after re-adding a skill:\n%s", after)
	}

	e.mustRun("team", "skill", "m1", "rust")
	var d MemberDetail
	e.runJSON(&d, "team", "get", "m1")
	if want := []string{"go", "rust"}; !reflect.DeepEqual(d.Member.Skills, want) {
		t.Errorf("Skills = %v, want %v", d.Member.Skills, want)
	}

	if _, _, code := e.run("team", "skill", "m1", "  "); code != ExitError {
		t.Errorf("blank skill: exit %d, want %d", code, ExitError)
	}
	if _, _, code := e.run("team", "skill", "m9", "go"); code != ExitNotFound {
		t.Errorf("unknown member: exit %d, want %d", code, ExitNotFound)
	}
}
