package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hatvoni/hatvoni/internal/project"
	"github.com/hatvoni/hatvoni/internal/task"
	"github.com/hatvoni/hatvoni/internal/team"
	_ "modernc.org/sqlite"
)

// Index is a disposable SQLite copy of the three documents, used for
// cross-store reports. The JSON documents stay authoritative.
type Index struct {
	db *sql.DB
}

// MemberWorkload summarises the tasks assigned to one member.
// Assignees with no member record are reported with an empty Name.
type MemberWorkload struct {
	MemberID  string `json:"member_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Open      int    `json:"open"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// ProjectProgress summarises the tasks and milestones of one project.
type ProjectProgress struct {
	ProjectID      string  `json:"project_id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Milestones     int     `json:"milestones"`
	Tasks          int     `json:"tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PercentDone    float64 `json:"percent_done"`
}

// UnassignedTask is a task row with no assignee.
type UnassignedTask struct {
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createIndexSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func createIndexSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			seq INTEGER NOT NULL,
			project_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			start_date TEXT,
			created_at TEXT
		);

		CREATE TABLE IF NOT EXISTS milestones (
			project_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			description TEXT NOT NULL,
			added_at TEXT,
			PRIMARY KEY (project_id, position)
		);

		CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER NOT NULL,
			task_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			project_id TEXT NOT NULL,
			assigned_to TEXT,
			priority TEXT NOT NULL,
			priority_rank INTEGER NOT NULL,
			status TEXT NOT NULL,
			updated_at TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_to) WHERE assigned_to IS NOT NULL;

		CREATE TABLE IF NOT EXISTS members (
			seq INTEGER NOT NULL,
			member_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			role TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS member_skills (
			member_id TEXT NOT NULL,
			skill TEXT NOT NULL,
			PRIMARY KEY (member_id, skill)
		);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

// SourceHash computes a SHA256 over the given files in order.
// A missing file contributes no bytes.
func SourceHash(paths ...string) (string, error) {
	h := sha256.New()
	for _, path := range paths {
		if err := hashFile(h, path); err != nil {
			return "", err
		}
		// Separator so content cannot shift between files unnoticed
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// StoredHash returns the source hash recorded by the last Sync, or "".
func (x *Index) StoredHash() (string, error) {
	var hash sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = 'source_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// NeedsSync reports whether the index was built from different sources.
func (x *Index) NeedsSync(hash string) (bool, error) {
	stored, err := x.StoredHash()
	if err != nil {
		return true, err
	}
	return stored != hash, nil
}

// Sync clears the index and refills it from the given records in one
// transaction, recording hash as the source hash.
func (x *Index) Sync(projects []project.Project, tasks []task.Task, members []team.Member, hash string) error {
	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"projects", "milestones", "tasks", "members", "member_skills"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertProjects(tx, projects); err != nil {
		return err
	}
	if err := insertTasks(tx, tasks); err != nil {
		return err
	}
	if err := insertMembers(tx, members); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('source_hash', ?)`, hash); err != nil {
		return fmt.Errorf("updating hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

func insertProjects(tx *sql.Tx, projects []project.Project) error {
	stmt, err := tx.Prepare(`
		INSERT INTO projects (seq, project_id, name, status, start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing projects insert: %w", err)
	}
	defer stmt.Close()

	msStmt, err := tx.Prepare(`
		INSERT INTO milestones (project_id, position, description, added_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing milestones insert: %w", err)
	}
	defer msStmt.Close()

	for i, p := range projects {
		if _, err := stmt.Exec(i, p.ID, p.Name, string(p.Status), p.StartDate, p.CreatedAt); err != nil {
			return fmt.Errorf("inserting project %s: %w", p.ID, err)
		}
		for j, m := range p.Milestones {
			if _, err := msStmt.Exec(p.ID, j, m.Description, m.AddedAt); err != nil {
				return fmt.Errorf("inserting milestone %d of %s: %w", j, p.ID, err)
			}
		}
	}
	return nil
}

func insertTasks(tx *sql.Tx, tasks []task.Task) error {
	stmt, err := tx.Prepare(`
		INSERT INTO tasks (seq, task_id, title, project_id, assigned_to, priority, priority_rank, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing tasks insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		var assignee sql.NullString
		if t.AssignedTo != nil {
			assignee = sql.NullString{String: *t.AssignedTo, Valid: true}
		}
		_, err := stmt.Exec(i, t.ID, t.Title, t.ProjectID, assignee,
			string(t.Priority), t.Priority.Rank(), string(t.Status), t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}
	return nil
}

func insertMembers(tx *sql.Tx, members []team.Member) error {
	stmt, err := tx.Prepare(`
		INSERT INTO members (seq, member_id, name, email, role)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing members insert: %w", err)
	}
	defer stmt.Close()

	skillStmt, err := tx.Prepare(`INSERT OR IGNORE INTO member_skills (member_id, skill) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing skills insert: %w", err)
	}
	defer skillStmt.Close()

	for i, m := range members {
		if _, err := stmt.Exec(i, m.ID, m.Name, m.Email, string(m.Role)); err != nil {
			return fmt.Errorf("inserting member %s: %w", m.ID, err)
		}
		for _, skill := range m.Skills {
			if _, err := skillStmt.Exec(m.ID, skill); err != nil {
				return fmt.Errorf("inserting skill %s of %s: %w", skill, m.ID, err)
			}
		}
	}
	return nil
}

// Workload returns per-member task counts: known members first in insertion
// order, then assignees with no member record ordered by id.
func (x *Index) Workload() ([]MemberWorkload, error) {
	rows, err := x.db.Query(`
		SELECT member_id, name, role, open_tasks, done_tasks, total FROM (
			SELECT m.seq AS seq, m.member_id AS member_id, m.name AS name, m.role AS role,
				COALESCE(SUM(CASE WHEN t.status <> 'completed' THEN 1 ELSE 0 END), 0) AS open_tasks,
				COALESCE(SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END), 0) AS done_tasks,
				COUNT(t.task_id) AS total
			FROM members m
			LEFT JOIN tasks t ON t.assigned_to = m.member_id
			GROUP BY m.member_id
			UNION ALL
			SELECT -1 AS seq, t.assigned_to, '', '',
				SUM(CASE WHEN t.status <> 'completed' THEN 1 ELSE 0 END),
				SUM(CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END),
				COUNT(*)
			FROM tasks t
			WHERE t.assigned_to IS NOT NULL
				AND t.assigned_to NOT IN (SELECT member_id FROM members)
			GROUP BY t.assigned_to
		)
		ORDER BY seq < 0, seq, member_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying workload: %w", err)
	}
	defer rows.Close()

	var out []MemberWorkload
	for rows.Next() {
		var w MemberWorkload
		if err := rows.Scan(&w.MemberID, &w.Name, &w.Role, &w.Open, &w.Completed, &w.Total); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ProjectProgress returns milestone and task counts per project in
// insertion order.
func (x *Index) ProjectProgress() ([]ProjectProgress, error) {
	rows, err := x.db.Query(`
		SELECT p.project_id, p.name, p.status,
			(SELECT COUNT(*) FROM milestones ms WHERE ms.project_id = p.project_id),
			(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.project_id),
			(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.project_id AND t.status = 'completed')
		FROM projects p
		ORDER BY p.seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying project progress: %w", err)
	}
	defer rows.Close()

	var out []ProjectProgress
	for rows.Next() {
		var p ProjectProgress
		if err := rows.Scan(&p.ProjectID, &p.Name, &p.Status, &p.Milestones, &p.Tasks, &p.CompletedTasks); err != nil {
			return nil, err
		}
		if p.Tasks > 0 {
			p.PercentDone = float64(p.CompletedTasks) * 100 / float64(p.Tasks)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UnassignedTasks returns tasks with no assignee, most urgent first.
func (x *Index) UnassignedTasks() ([]UnassignedTask, error) {
	rows, err := x.db.Query(`
		SELECT task_id, title, project_id, priority, status
		FROM tasks
		WHERE assigned_to IS NULL
		ORDER BY priority_rank, task_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying unassigned tasks: %w", err)
	}
	defer rows.Close()

	var out []UnassignedTask
	for rows.Next() {
		var t UnassignedTask
		if err := rows.Scan(&t.TaskID, &t.Title, &t.ProjectID, &t.Priority, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
