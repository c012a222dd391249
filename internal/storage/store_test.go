package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/projectstack/projectstack/internal/models"
)

// setupStore creates a fresh database in a temp directory.
func setupStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "projectstack.db")); err != nil {
		t.Errorf("Expected projectstack.db to exist: %v", err)
	}
}

func TestCreateAndGetProject(t *testing.T) {
	s := setupStore(t)

	proj, err := s.CreateProject("Alpha", "auth system")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if proj.ID == "" {
		t.Error("ID should not be empty")
	}
	if proj.Name != "Alpha" {
		t.Errorf("Name = %q, want %q", proj.Name, "Alpha")
	}
	if proj.Summary != "auth system" {
		t.Errorf("Summary = %q, want %q", proj.Summary, "auth system")
	}
	if proj.CreatedAt == "" {
		t.Error("CreatedAt should not be empty")
	}

	got, err := s.GetProject(proj.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "Alpha" {
		t.Errorf("GetProject Name = %q, want %q", got.Name, "Alpha")
	}
}

func TestCreateProjectEmptySummary(t *testing.T) {
	s := setupStore(t)

	proj, err := s.CreateProject("Bare", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if proj.Summary != "" {
		t.Errorf("Summary = %q, want empty", proj.Summary)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	s := setupStore(t)

	if _, err := s.GetProject("missing"); err == nil {
		t.Error("Expected error for missing project")
	}
}

func TestListProjects(t *testing.T) {
	s := setupStore(t)

	s.CreateProject("alpha", "")
	s.CreateProject("beta", "")

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("ListProjects = %d projects, want 2", len(projects))
	}
	// Newest first.
	if projects[0].Name != "beta" {
		t.Errorf("First project = %q, want %q", projects[0].Name, "beta")
	}
}

func TestUpdateProjectSummary(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "old")
	if err := s.UpdateProjectSummary(proj.ID, "new consolidated summary"); err != nil {
		t.Fatalf("UpdateProjectSummary: %v", err)
	}

	got, _ := s.GetProject(proj.ID)
	if got.Summary != "new consolidated summary" {
		t.Errorf("Summary = %q, want %q", got.Summary, "new consolidated summary")
	}

	if err := s.UpdateProjectSummary("missing", "x"); err == nil {
		t.Error("Expected error for missing project")
	}
}

func TestUpdateProjectPRDURL(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	if err := s.UpdateProjectPRDURL(proj.ID, "https://agents.example.com/a/c1"); err != nil {
		t.Fatalf("UpdateProjectPRDURL: %v", err)
	}

	got, _ := s.GetProject(proj.ID)
	if got.PRDURL != "https://agents.example.com/a/c1" {
		t.Errorf("PRDURL = %q", got.PRDURL)
	}

	// Calling again overwrites.
	s.UpdateProjectPRDURL(proj.ID, "https://agents.example.com/a/c2")
	got, _ = s.GetProject(proj.ID)
	if got.PRDURL != "https://agents.example.com/a/c2" {
		t.Errorf("PRDURL after overwrite = %q", got.PRDURL)
	}
}

func TestDeleteProjectCascade(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	s.InsertKnowledgeEntry(proj.ID, "note one", "")
	s.InsertKnowledgeEntry(proj.ID, "note two", "")
	s.InsertActionItems(proj.ID, []string{"do a", "do b"})
	s.InsertJiraLink(proj.ID, "PROJ-1", "A ticket", "https://acme.atlassian.net/browse/PROJ-1")

	if err := s.DeleteProject(proj.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	if _, err := s.GetProject(proj.ID); err == nil {
		t.Error("Expected project to be gone")
	}
	entries, _ := s.ListKnowledge(proj.ID)
	if len(entries) != 0 {
		t.Errorf("Expected 0 knowledge entries, got %d", len(entries))
	}
	items, _ := s.ListActionItems(proj.ID)
	if len(items) != 0 {
		t.Errorf("Expected 0 action items, got %d", len(items))
	}
	links, _ := s.ListJiraLinks(proj.ID)
	if len(links) != 0 {
		t.Errorf("Expected 0 jira links, got %d", len(links))
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	s := setupStore(t)

	if err := s.DeleteProject("missing"); err == nil {
		t.Error("Expected error for missing project")
	}
}

func TestKnowledgeEntries(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	e1, err := s.InsertKnowledgeEntry(proj.ID, "first note", "summary one")
	if err != nil {
		t.Fatalf("InsertKnowledgeEntry: %v", err)
	}
	if e1.ID == "" || e1.CreatedAt == "" {
		t.Error("Entry should have ID and CreatedAt")
	}
	s.InsertKnowledgeEntry(proj.ID, "second note", "")
	s.InsertKnowledgeEntry(proj.ID, "third note", "")

	entries, err := s.ListKnowledge(proj.ID)
	if err != nil {
		t.Fatalf("ListKnowledge: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	// Chronological order.
	if entries[0].Content != "first note" || entries[2].Content != "third note" {
		t.Errorf("Entries out of order: %q ... %q", entries[0].Content, entries[2].Content)
	}

	n, err := s.CountKnowledge(proj.ID)
	if err != nil {
		t.Fatalf("CountKnowledge: %v", err)
	}
	if n != 3 {
		t.Errorf("CountKnowledge = %d, want 3", n)
	}
}

func TestInsertActionItems(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	items, err := s.InsertActionItems(proj.ID, []string{"ship v2", "email team"})
	if err != nil {
		t.Fatalf("InsertActionItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Status != models.StatusPending {
			t.Errorf("Status = %q, want pending", item.Status)
		}
	}

	none, err := s.InsertActionItems(proj.ID, nil)
	if err != nil {
		t.Fatalf("InsertActionItems(nil): %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil for empty batch, got %v", none)
	}
}

func TestUpdateActionItemStatus(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	items, _ := s.InsertActionItems(proj.ID, []string{"one", "two"})

	updated, err := s.UpdateActionItemStatus(items[0].ID, models.StatusDone)
	if err != nil {
		t.Fatalf("UpdateActionItemStatus: %v", err)
	}
	if updated.Status != models.StatusDone {
		t.Errorf("Status = %q, want done", updated.Status)
	}

	// Back to pending restores the original state.
	updated, err = s.UpdateActionItemStatus(items[0].ID, models.StatusPending)
	if err != nil {
		t.Fatalf("UpdateActionItemStatus: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("Status = %q, want pending", updated.Status)
	}

	// Sibling untouched throughout.
	all, _ := s.ListActionItems(proj.ID)
	if all[1].Status != models.StatusPending {
		t.Errorf("Sibling status = %q, want pending", all[1].Status)
	}

	if _, err := s.UpdateActionItemStatus(items[0].ID, "cancelled"); err == nil {
		t.Error("Expected error for invalid status")
	}
	if _, err := s.UpdateActionItemStatus("missing", models.StatusDone); err == nil {
		t.Error("Expected error for missing item")
	}
}

func TestJiraLinks(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	link, err := s.InsertJiraLink(proj.ID, "PROJ-7", "Fix login", "https://acme.atlassian.net/browse/PROJ-7")
	if err != nil {
		t.Fatalf("InsertJiraLink: %v", err)
	}
	if link.JiraKey != "PROJ-7" {
		t.Errorf("JiraKey = %q", link.JiraKey)
	}

	links, err := s.ListJiraLinks(proj.ID)
	if err != nil {
		t.Fatalf("ListJiraLinks: %v", err)
	}
	if len(links) != 1 || links[0].JiraTitle != "Fix login" {
		t.Errorf("Unexpected links: %+v", links)
	}

	keys, err := s.ListLinkedJiraKeys()
	if err != nil {
		t.Fatalf("ListLinkedJiraKeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "PROJ-7" {
		t.Errorf("Keys = %v, want [PROJ-7]", keys)
	}
}

func TestPreferences(t *testing.T) {
	s := setupStore(t)

	_, ok, err := s.GetPreference("theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if ok {
		t.Error("Expected unset preference")
	}

	if err := s.SetPreference("theme", "dark"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	value, ok, _ := s.GetPreference("theme")
	if !ok || value != "dark" {
		t.Errorf("GetPreference = %q, %v; want dark, true", value, ok)
	}

	// Upsert overwrites.
	s.SetPreference("theme", "light")
	value, _, _ = s.GetPreference("theme")
	if value != "light" {
		t.Errorf("GetPreference after upsert = %q, want light", value)
	}
}

func TestSearchKnowledge(t *testing.T) {
	s := setupStore(t)

	proj, _ := s.CreateProject("Alpha", "")
	s.InsertKnowledgeEntry(proj.ID, "OAuth login flow shipped to staging", "")
	s.InsertKnowledgeEntry(proj.ID, "Budget review for Q3 marketing", "")

	results, err := s.SearchKnowledge("oauth")
	if err != nil {
		t.Fatalf("SearchKnowledge: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ProjectID != proj.ID {
		t.Errorf("ProjectID = %q, want %q", results[0].ProjectID, proj.ID)
	}

	// Cascade delete also removes entries from the search index.
	s.DeleteProject(proj.ID)
	results, err = s.SearchKnowledge("oauth")
	if err != nil {
		t.Fatalf("SearchKnowledge after delete: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected 0 results after delete, got %d", len(results))
	}
}
