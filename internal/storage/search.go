package storage

import (
	"fmt"

	"github.com/projectstack/projectstack/internal/models"
)

// SearchKnowledge performs FTS5 full-text search over knowledge entry content
// across all projects.
func (s *Store) SearchKnowledge(query string) ([]models.KnowledgeEntry, error) {
	rows, err := s.db.Query(
		`SELECT k.id, k.project_id, k.content, coalesce(k.summary, ''), k.created_at
		 FROM knowledge_entries k
		 JOIN knowledge_fts ON knowledge_fts.rowid = k.rowid
		 WHERE knowledge_fts MATCH ?
		 ORDER BY rank`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("search knowledge fts: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Content, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
