// Package workflow orchestrates the ingestion pipeline: classify free text
// into a project, store the knowledge entry and extracted action items, and
// keep the project's consolidated summary fresh.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/projectstack/projectstack/internal/ai"
	"github.com/projectstack/projectstack/internal/jira"
	"github.com/projectstack/projectstack/internal/storage"
)

// knowledgeSeparator joins entry contents when building a project's
// aggregate knowledge context.
const knowledgeSeparator = "\n\n---\n\n"

// ErrEmptyText is returned when an ingestion request carries no text.
var ErrEmptyText = errors.New("please paste some text")

// TicketFetcher retrieves one ticket from the external tracker.
type TicketFetcher interface {
	FetchTicket(ctx context.Context, key string) (*jira.Ticket, error)
}

// PRDTrigger fires the external document-generation agent and returns the
// conversation URL.
type PRDTrigger interface {
	Trigger(ctx context.Context, content string) (string, error)
}

// Service wires the store and the generative capability together. Tickets
// and PRD are optional integrations; the corresponding operations report a
// configuration error when unset.
type Service struct {
	Store   *storage.Store
	AI      ai.Capability
	Tickets TicketFetcher
	PRD     PRDTrigger
}

// IngestResult is the outcome of one ingestion. When Suggestion is true the
// classifier was unsure, nothing was persisted, and Message carries a prompt
// the caller can accept by re-invoking with forceNewProject set.
type IngestResult struct {
	Success    bool   `json:"success"`
	ProjectID  string `json:"project_id,omitempty"`
	Message    string `json:"message"`
	Suggestion bool   `json:"suggestion,omitempty"`
}

// Ingest classifies text into a new or existing project, stores the
// knowledge entry and action items, and refreshes the summary of an existing
// project. Writes are ordered so a partial failure never leaves knowledge or
// action items without a project; the summary refresh is best-effort.
func (s *Service) Ingest(ctx context.Context, text string, forceNewProject bool) (*IngestResult, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	projects, err := s.Store.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("load project catalogue: %w", err)
	}

	catalogue := make([]ai.ProjectRef, len(projects))
	for i, p := range projects {
		catalogue[i] = ai.ProjectRef{ID: p.ID, Name: p.Name, Summary: p.Summary}
	}

	cls, err := s.AI.Classify(ctx, ai.ClassifyInput{
		Text:             text,
		ExistingProjects: catalogue,
		ForceNewProject:  forceNewProject,
	})
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if cls.ProjectName == "" {
		return nil, errors.New("AI could not determine a project name")
	}

	// Two-phase confirmation: when the classifier is unsure and the caller
	// did not force a new project, hand the suggestion back untouched.
	if cls.Suggestion != "" && !forceNewProject {
		return &IngestResult{Message: cls.Suggestion, Suggestion: true}, nil
	}

	projectID, projectName, isExisting, err := s.resolveProject(catalogue, cls, forceNewProject)
	if err != nil {
		return nil, err
	}

	if _, err := s.Store.InsertKnowledgeEntry(projectID, text, cls.Summary); err != nil {
		return nil, fmt.Errorf("store knowledge entry: %w", err)
	}

	if len(cls.ActionItems) > 0 {
		if _, err := s.Store.InsertActionItems(projectID, cls.ActionItems); err != nil {
			// The knowledge entry stays; a retry will duplicate it.
			return nil, fmt.Errorf("store action items: %w", err)
		}
	}

	if isExisting {
		s.refreshSummary(ctx, projectID)
	}

	return &IngestResult{
		Success:   true,
		ProjectID: projectID,
		Message:   "Content added to project: " + projectName,
	}, nil
}

// resolveProject picks the target project for an ingestion. The classifier's
// id is only honored when it resolves in the catalogue loaded at the start of
// the call; the catalogue name always wins over the generated one.
func (s *Service) resolveProject(catalogue []ai.ProjectRef, cls *ai.Classification, forceNewProject bool) (id, name string, isExisting bool, err error) {
	if !forceNewProject && cls.ProjectID != "" {
		for _, p := range catalogue {
			if p.ID == cls.ProjectID {
				return p.ID, p.Name, true, nil
			}
		}
		slog.Warn("classifier returned project id not in catalogue, creating new project",
			"project_id", cls.ProjectID)
	}

	proj, err := s.Store.CreateProject(cls.ProjectName, cls.Summary)
	if err != nil {
		return "", "", false, fmt.Errorf("create project: %w", err)
	}
	return proj.ID, proj.Name, false, nil
}

// refreshSummary re-derives the project summary from all of its knowledge
// entries. Failures are logged, never surfaced: the ingestion already
// succeeded and the summary is a best-effort re-derivation.
func (s *Service) refreshSummary(ctx context.Context, projectID string) {
	entries, err := s.Store.ListKnowledge(projectID)
	if err != nil {
		slog.Warn("summary refresh: load knowledge failed", "project_id", projectID, "error", err)
		return
	}

	contents := make([]string, len(entries))
	for i, e := range entries {
		contents[i] = e.Content
	}

	newSummary, err := s.AI.SummarizeProject(ctx, strings.Join(contents, knowledgeSeparator))
	if err != nil {
		slog.Warn("summary refresh: summarizer failed", "project_id", projectID, "error", err)
		return
	}
	if newSummary == "" {
		return
	}
	if err := s.Store.UpdateProjectSummary(projectID, newSummary); err != nil {
		slog.Warn("summary refresh: update failed", "project_id", projectID, "error", err)
	}
}
