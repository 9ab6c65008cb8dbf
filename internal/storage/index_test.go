package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hatvoni/hatvoni/internal/project"
	"github.com/hatvoni/hatvoni/internal/task"
	"github.com/hatvoni/hatvoni/internal/team"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := OpenIndex(filepath.Join(t.TempDir(), "cache", "index.db"))
	if err != nil {
		t.Fatalf("OpenIndex() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleRecords() ([]project.Project, []task.Task, []team.Member) {
	p1 := project.New("p1", "Platform", "Web", baseTime)
	p1.AddMilestone("Design", baseTime)
	p1.AddMilestone("Build", baseTime)
	p2 := project.New("p2", "Mobile", "App", baseTime)

	mk := func(id, projectID, assignee string, priority task.Priority, status task.Status) task.Task {
		tk := task.New(id, "Task "+id, "", projectID, baseTime)
		tk.Priority = priority
		tk.Status = status
		if assignee != "" {
			tk.AssignTo(assignee, baseTime)
		}
		return tk
	}
	tasks := []task.Task{
		mk("t1", "p1", "m2", task.PriorityHigh, task.StatusInProgress),
		mk("t2", "p1", "m2", task.PriorityHigh, task.StatusCompleted),
		mk("t3", "p1", "m1", task.PriorityMedium, task.StatusCompleted),
		mk("t4", "p1", "", task.PriorityLow, task.StatusTodo),
		mk("t5", "p2", "", task.PriorityCritical, task.StatusTodo),
		mk("t6", "p9", "ghost", "someday", task.StatusTodo),
	}

	m1 := team.NewMember("m1", "Alice", "alice@example.com", baseTime)
	m1.Role = team.RoleProjectManager
	m1.AddSkill("planning")
	m2 := team.NewMember("m2", "Bob", "bob@example.com", baseTime)
	m2.AddSkill("go")
	m3 := team.NewMember("m3", "Carol", "carol@example.com", baseTime)
	m3.Role = team.RoleDesigner

	return []project.Project{p1, p2}, tasks, []team.Member{m1, m2, m3}
}

func TestIndex_Workload(t *testing.T) {
	idx := openTestIndex(t)
	projects, tasks, members := sampleRecords()
	if err := idx.Sync(projects, tasks, members, "h1"); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	got, err := idx.Workload()
	if err != nil {
		t.Fatalf("Workload() error = %v", err)
	}
	want := []MemberWorkload{
		{MemberID: "m1", Name: "Alice", Role: "project_manager", Open: 0, Completed: 1, Total: 1},
		{MemberID: "m2", Name: "Bob", Role: "developer", Open: 1, Completed: 1, Total: 2},
		{MemberID: "m3", Name: "Carol", Role: "designer", Open: 0, Completed: 0, Total: 0},
		{MemberID: "ghost", Name: "", Role: "", Open: 1, Completed: 0, Total: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Workload() got %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Workload()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIndex_ProjectProgress(t *testing.T) {
	idx := openTestIndex(t)
	projects, tasks, members := sampleRecords()
	if err := idx.Sync(projects, tasks, members, "h1"); err != nil {
		t.Fatal(err)
	}

	got, err := idx.ProjectProgress()
	if err != nil {
		t.Fatalf("ProjectProgress() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ProjectProgress() got %d rows, want 2", len(got))
	}
	if got[0].ProjectID != "p1" || got[0].Milestones != 2 || got[0].Tasks != 4 || got[0].CompletedTasks != 2 {
		t.Errorf("p1 progress = %+v", got[0])
	}
	if got[0].PercentDone != 50 {
		t.Errorf("p1 PercentDone = %v, want 50", got[0].PercentDone)
	}
	if got[1].ProjectID != "p2" || got[1].Tasks != 1 || got[1].PercentDone != 0 {
		t.Errorf("p2 progress = %+v", got[1])
	}
}

func TestIndex_UnassignedTasks(t *testing.T) {
	idx := openTestIndex(t)
	projects, tasks, members := sampleRecords()
	if err := idx.Sync(projects, tasks, members, "h1"); err != nil {
		t.Fatal(err)
	}

	got, err := idx.UnassignedTasks()
	if err != nil {
		t.Fatalf("UnassignedTasks() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("UnassignedTasks() got %d, want 2", len(got))
	}
	// critical sorts before low
	if got[0].TaskID != "t5" || got[1].TaskID != "t4" {
		t.Errorf("UnassignedTasks() order = [%s %s], want [t5 t4]", got[0].TaskID, got[1].TaskID)
	}
}

func TestIndex_SyncReplacesContents(t *testing.T) {
	idx := openTestIndex(t)
	projects, tasks, members := sampleRecords()
	if err := idx.Sync(projects, tasks, members, "h1"); err != nil {
		t.Fatal(err)
	}
	if err := idx.Sync(projects[:1], nil, members[:1], "h2"); err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}

	progress, err := idx.ProjectProgress()
	if err != nil {
		t.Fatal(err)
	}
	if len(progress) != 1 || progress[0].Tasks != 0 {
		t.Errorf("ProjectProgress() after resync = %+v", progress)
	}
	workload, err := idx.Workload()
	if err != nil {
		t.Fatal(err)
	}
	if len(workload) != 1 || workload[0].MemberID != "m1" {
		t.Errorf("Workload() after resync = %+v", workload)
	}
}

func TestIndex_NeedsSync(t *testing.T) {
	idx := openTestIndex(t)

	needs, err := idx.NeedsSync("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !needs {
		t.Error("fresh index should need sync")
	}

	if err := idx.Sync(nil, nil, nil, "abc"); err != nil {
		t.Fatal(err)
	}
	if needs, _ := idx.NeedsSync("abc"); needs {
		t.Error("index should be in sync after Sync with same hash")
	}
	if needs, _ := idx.NeedsSync("def"); !needs {
		t.Error("index should need sync for a different hash")
	}
}

func TestSourceHash(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	empty, err := SourceHash(a, b)
	if err != nil {
		t.Fatalf("SourceHash() on missing files error = %v", err)
	}

	if err := os.WriteFile(a, []byte(`{"x":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	h1, err := SourceHash(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == empty {
		t.Error("hash should change when a file appears")
	}

	again, _ := SourceHash(a, b)
	if again != h1 {
		t.Error("hash should be deterministic")
	}

	// Same bytes in the other file must hash differently
	os.Remove(a)
	if err := os.WriteFile(b, []byte(`{"x":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	h2, _ := SourceHash(a, b)
	if h2 == h1 {
		t.Error("hash should depend on which file holds the content")
	}
}
