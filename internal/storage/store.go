package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/projectstack/projectstack/internal/models"
)

// Store manages the projectstack.db database holding projects, knowledge
// entries, action items, Jira links and user preferences.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database under dataDir and runs migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projectstack.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	if _, err := db.Exec(Triggers); err != nil {
		db.Close()
		return nil, fmt.Errorf("create triggers: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProject inserts a new project. The summary comes from the classifier
// (first entry's one-line synopsis) and may be empty.
func (s *Store) CreateProject(name, summary string) (*models.Project, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, summary) VALUES (?, ?, nullif(?, ''))`,
		id, name, summary,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(id)
}

// GetProject looks up a project by its UUID.
func (s *Store) GetProject(id string) (*models.Project, error) {
	row := s.db.QueryRow(
		`SELECT id, name, coalesce(summary, ''), coalesce(prd_url, ''), created_at FROM projects WHERE id = ?`,
		id,
	)
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Summary, &p.PRDURL, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, newest first.
func (s *Store) ListProjects() ([]models.Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, coalesce(summary, ''), coalesce(prd_url, ''), created_at FROM projects ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Summary, &p.PRDURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProjectSummary replaces a project's consolidated summary.
func (s *Store) UpdateProjectSummary(id, summary string) error {
	result, err := s.db.Exec(
		`UPDATE projects SET summary = ? WHERE id = ?`,
		summary, id,
	)
	if err != nil {
		return fmt.Errorf("update project summary: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("project %q not found", id)
	}
	return nil
}

// UpdateProjectPRDURL stores (or overwrites) the generated PRD link.
func (s *Store) UpdateProjectPRDURL(id, url string) error {
	result, err := s.db.Exec(
		`UPDATE projects SET prd_url = ? WHERE id = ?`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("update prd url: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("project %q not found", id)
	}
	return nil
}

// DeleteProject removes a project and everything attached to it. Dependents
// go first (action items, knowledge entries, Jira links) so a failure mid-way
// never leaves orphans pointing at a missing project.
func (s *Store) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM action_items WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("delete action items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM knowledge_entries WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("delete knowledge entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM linked_jira_items WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("delete jira links: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("project %q not found", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetPreference returns the stored value for key. ok is false when the key
// has never been set.
func (s *Store) GetPreference(key string) (value string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT value FROM user_preferences WHERE key = ?`, key)
	err = row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}

// SetPreference upserts a key/value preference.
func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_preferences (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}
