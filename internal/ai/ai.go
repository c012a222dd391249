// Package ai defines the generative capabilities the workflow depends on:
// classifying free text into projects, consolidating project summaries and
// answering questions over project knowledge. Implementations are pluggable;
// OpenAI is the production one, Fake the deterministic one for tests and
// offline use.
package ai

import "context"

// ProjectRef is the slice of project state the classifier matches against.
type ProjectRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// ClassifyInput carries the text to classify plus the current project
// catalogue. ForceNewProject makes the classifier skip matching entirely.
type ClassifyInput struct {
	Text             string
	ExistingProjects []ProjectRef
	ForceNewProject  bool
}

// Classification is the classifier's decision. ProjectID is empty when no
// existing project matched; Suggestion, when set, is a human-readable prompt
// offering to create ProjectName as a new project.
type Classification struct {
	ProjectName string   `json:"projectName"`
	ProjectID   string   `json:"projectId"`
	Summary     string   `json:"summary"`
	ActionItems []string `json:"actionItems"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Capability is the boundary to the generative model. Outputs are not
// deterministic; callers must re-validate anything used for identity.
type Capability interface {
	Classify(ctx context.Context, input ClassifyInput) (*Classification, error)
	SummarizeProject(ctx context.Context, knowledge string) (string, error)
	Chat(ctx context.Context, query, knowledge string) (string, error)
}
