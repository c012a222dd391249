package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/projectstack/projectstack/internal/jira"
	"github.com/projectstack/projectstack/internal/session"
	"github.com/projectstack/projectstack/internal/storage"
	"github.com/projectstack/projectstack/internal/workflow"
)

// IngestTools holds references needed by ingestion, chat and external
// integration handlers. Jira is nil when the tracker is not configured.
type IngestTools struct {
	Svc     *workflow.Service
	Jira    *jira.Client
	Store   *storage.Store
	Session *session.Session
}

// --- Input types ---

type IngestTextInput struct {
	Text            string `json:"text" jsonschema:"Free-form text to ingest (notes, chat logs, tickets)"`
	ForceNewProject bool   `json:"force_new_project,omitempty" jsonschema:"Create a new project instead of classifying into an existing one"`
}

type IngestJiraTicketInput struct {
	TicketKey       string `json:"ticket_key" jsonschema:"Jira issue key, e.g. PROJ-123"`
	ForceNewProject bool   `json:"force_new_project,omitempty" jsonschema:"Create a new project instead of classifying into an existing one"`
}

type SearchJiraInput struct {
	JQL        string `json:"jql" jsonschema:"JQL query to search issues with"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of issues to return (default 50)"`
}

type ChatInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID; defaults to the active project"`
	Query     string `json:"query" jsonschema:"Question to answer from the project's knowledge"`
}

type GeneratePRDInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID; defaults to the active project"`
}

// searchResult is one Jira search hit, with Linked marking tickets already
// ingested into a project.
type searchResult struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
	Linked bool   `json:"linked"`
}

// --- Handlers ---

func (t *IngestTools) IngestText(ctx context.Context, _ *mcp.CallToolRequest, input IngestTextInput) (*mcp.CallToolResult, any, error) {
	result, err := t.Svc.Ingest(ctx, input.Text, input.ForceNewProject)
	if err != nil {
		if errors.Is(err, workflow.ErrEmptyText) {
			return toolError("Please paste some text."), nil, nil
		}
		return toolError("Ingestion failed: %v", err), nil, nil
	}

	if result.Success {
		if proj, err := t.Store.GetProject(result.ProjectID); err == nil {
			t.Session.SetActive(proj.ID, proj.Name)
		}
	}
	return toolJSON(result)
}

func (t *IngestTools) IngestJiraTicket(ctx context.Context, _ *mcp.CallToolRequest, input IngestJiraTicketInput) (*mcp.CallToolResult, any, error) {
	result, err := t.Svc.IngestTicket(ctx, input.TicketKey, input.ForceNewProject)
	if err != nil {
		return toolError("Failed to ingest Jira ticket: %v", err), nil, nil
	}

	if proj, err := t.Store.GetProject(result.ProjectID); err == nil {
		t.Session.SetActive(proj.ID, proj.Name)
	}
	return toolJSON(result)
}

func (t *IngestTools) SearchJira(ctx context.Context, _ *mcp.CallToolRequest, input SearchJiraInput) (*mcp.CallToolResult, any, error) {
	if t.Jira == nil {
		return toolError("Jira integration is not configured."), nil, nil
	}
	if input.JQL == "" {
		return toolError("JQL query is required"), nil, nil
	}

	issues, err := t.Jira.SearchIssues(ctx, input.JQL, input.MaxResults)
	if err != nil {
		return toolError("Jira search failed: %v", err), nil, nil
	}

	linkedKeys, err := t.Store.ListLinkedJiraKeys()
	if err != nil {
		return toolError("Failed to load linked tickets: %v", err), nil, nil
	}
	linked := make(map[string]bool, len(linkedKeys))
	for _, k := range linkedKeys {
		linked[k] = true
	}

	results := make([]searchResult, len(issues))
	for i, issue := range issues {
		results[i] = searchResult{
			Key:    issue.Key,
			Title:  issue.Fields.Summary,
			Status: issue.Fields.Status.Name,
			Linked: linked[issue.Key],
		}
	}
	return toolJSON(results)
}

func (t *IngestTools) CheckJiraLinks(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	keys, err := t.Store.ListLinkedJiraKeys()
	if err != nil {
		return toolError("Failed to fetch linked tickets: %v", err), nil, nil
	}
	if keys == nil {
		keys = []string{}
	}
	return toolJSON(keys)
}

func (t *IngestTools) ChatWithProject(ctx context.Context, _ *mcp.CallToolRequest, input ChatInput) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return toolError("Query is required"), nil, nil
	}
	projectID, errResult := resolveProjectID(t.Session, input.ProjectID)
	if errResult != nil {
		return errResult, nil, nil
	}

	return toolText(t.Svc.Chat(ctx, projectID, input.Query)), nil, nil
}

func (t *IngestTools) GeneratePRD(ctx context.Context, _ *mcp.CallToolRequest, input GeneratePRDInput) (*mcp.CallToolResult, any, error) {
	projectID, errResult := resolveProjectID(t.Session, input.ProjectID)
	if errResult != nil {
		return errResult, nil, nil
	}

	url, err := t.Svc.GeneratePRD(ctx, projectID)
	if err != nil {
		return toolError("Failed to generate PRD: %v", err), nil, nil
	}
	return toolText("PRD generation started: " + url), nil, nil
}
