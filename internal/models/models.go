package models

// Action item statuses. No other states exist.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Project groups related knowledge under one label. The summary is always
// machine-derived (classifier on creation, summarizer afterwards), never
// hand-edited.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Summary   string `json:"summary,omitempty"`
	PRDURL    string `json:"prd_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// KnowledgeEntry is one piece of raw ingested text attached to a project,
// with the one-line summary produced at ingestion time.
type KnowledgeEntry struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Content   string `json:"content"`
	Summary   string `json:"summary,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ActionItem is a short imperative task extracted from ingested text.
type ActionItem struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// LinkedJiraItem records the association between an external Jira ticket and
// the project its content was ingested into.
type LinkedJiraItem struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	JiraKey   string `json:"jira_key"`
	JiraTitle string `json:"jira_title"`
	JiraURL   string `json:"jira_url"`
	CreatedAt string `json:"created_at"`
}

// Preference is a process-wide key/value setting.
type Preference struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
