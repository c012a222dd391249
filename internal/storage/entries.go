package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/projectstack/projectstack/internal/models"
)

// InsertKnowledgeEntry stores one piece of ingested text for a project.
func (s *Store) InsertKnowledgeEntry(projectID, content, summary string) (*models.KnowledgeEntry, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO knowledge_entries (id, project_id, content, summary) VALUES (?, ?, ?, nullif(?, ''))`,
		id, projectID, content, summary,
	)
	if err != nil {
		return nil, fmt.Errorf("insert knowledge entry: %w", err)
	}

	entry := &models.KnowledgeEntry{ID: id, ProjectID: projectID, Content: content, Summary: summary}
	row := s.db.QueryRow(`SELECT created_at FROM knowledge_entries WHERE id = ?`, id)
	row.Scan(&entry.CreatedAt)
	return entry, nil
}

// ListKnowledge returns a project's knowledge entries in chronological order.
func (s *Store) ListKnowledge(projectID string) ([]models.KnowledgeEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, content, coalesce(summary, ''), created_at
		 FROM knowledge_entries WHERE project_id = ? ORDER BY created_at, rowid`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Content, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan knowledge entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountKnowledge returns the number of knowledge entries for a project.
func (s *Store) CountKnowledge(projectID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT count(*) FROM knowledge_entries WHERE project_id = ?`, projectID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count knowledge: %w", err)
	}
	return n, nil
}

// InsertActionItems bulk-inserts extracted action items as pending, all in
// one transaction so a partial batch is never visible.
func (s *Store) InsertActionItems(projectID string, titles []string) ([]models.ActionItem, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var created []models.ActionItem
	for _, title := range titles {
		id := uuid.New().String()
		_, err := tx.Exec(
			`INSERT INTO action_items (id, project_id, title, status) VALUES (?, ?, ?, 'pending')`,
			id, projectID, title,
		)
		if err != nil {
			return nil, fmt.Errorf("insert action item %q: %w", title, err)
		}
		created = append(created, models.ActionItem{
			ID:        id,
			ProjectID: projectID,
			Title:     title,
			Status:    models.StatusPending,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	for i := range created {
		s.db.QueryRow(`SELECT created_at FROM action_items WHERE id = ?`, created[i].ID).Scan(&created[i].CreatedAt)
	}
	return created, nil
}

// ListActionItems returns a project's action items in creation order.
func (s *Store) ListActionItems(projectID string) ([]models.ActionItem, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, title, status, created_at
		 FROM action_items WHERE project_id = ? ORDER BY created_at, rowid`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer rows.Close()

	var items []models.ActionItem
	for rows.Next() {
		var a models.ActionItem
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan action item: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// UpdateActionItemStatus flips an item between pending and done. Only those
// two states are allowed.
func (s *Store) UpdateActionItemStatus(id, status string) (*models.ActionItem, error) {
	if status != models.StatusPending && status != models.StatusDone {
		return nil, fmt.Errorf("invalid status %q (must be pending or done)", status)
	}

	result, err := s.db.Exec(`UPDATE action_items SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update action item: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return nil, fmt.Errorf("action item %q not found", id)
	}

	row := s.db.QueryRow(
		`SELECT id, project_id, title, status, created_at FROM action_items WHERE id = ?`, id,
	)
	var a models.ActionItem
	if err := row.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Status, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan action item: %w", err)
	}
	return &a, nil
}

// InsertJiraLink records the association between a Jira ticket and a project.
func (s *Store) InsertJiraLink(projectID, jiraKey, jiraTitle, jiraURL string) (*models.LinkedJiraItem, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO linked_jira_items (id, project_id, jira_key, jira_title, jira_url) VALUES (?, ?, ?, ?, ?)`,
		id, projectID, jiraKey, jiraTitle, jiraURL,
	)
	if err != nil {
		return nil, fmt.Errorf("insert jira link: %w", err)
	}

	link := &models.LinkedJiraItem{ID: id, ProjectID: projectID, JiraKey: jiraKey, JiraTitle: jiraTitle, JiraURL: jiraURL}
	s.db.QueryRow(`SELECT created_at FROM linked_jira_items WHERE id = ?`, id).Scan(&link.CreatedAt)
	return link, nil
}

// ListJiraLinks returns the Jira tickets linked to a project.
func (s *Store) ListJiraLinks(projectID string) ([]models.LinkedJiraItem, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, jira_key, jira_title, jira_url, created_at
		 FROM linked_jira_items WHERE project_id = ? ORDER BY created_at, rowid`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list jira links: %w", err)
	}
	defer rows.Close()

	var links []models.LinkedJiraItem
	for rows.Next() {
		var l models.LinkedJiraItem
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.JiraKey, &l.JiraTitle, &l.JiraURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan jira link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ListLinkedJiraKeys returns every linked Jira key across all projects, used
// to mark already-imported tickets in search results.
func (s *Store) ListLinkedJiraKeys() ([]string, error) {
	rows, err := s.db.Query(`SELECT jira_key FROM linked_jira_items ORDER BY jira_key`)
	if err != nil {
		return nil, fmt.Errorf("list linked jira keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan jira key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
