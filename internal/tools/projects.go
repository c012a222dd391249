package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/projectstack/projectstack/internal/models"
	"github.com/projectstack/projectstack/internal/session"
	"github.com/projectstack/projectstack/internal/storage"
)

// ProjectTools holds references needed by project and preference handlers.
type ProjectTools struct {
	Store   *storage.Store
	Session *session.Session
}

// --- Input types ---

type GetProjectInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID; defaults to the active project"`
}

type SwitchProjectInput struct {
	ProjectID string `json:"project_id" jsonschema:"ID of the project to make active"`
}

type DeleteProjectInput struct {
	ProjectID string `json:"project_id" jsonschema:"ID of the project to permanently delete with all its knowledge, action items and Jira links"`
}

type GetPreferenceInput struct {
	Key string `json:"key" jsonschema:"Preference key"`
}

type SetPreferenceInput struct {
	Key   string `json:"key" jsonschema:"Preference key"`
	Value string `json:"value" jsonschema:"Preference value"`
}

// projectDetail is the get_project response: the project row plus everything
// attached to it. KnowledgeCount counts actual knowledge entries.
type projectDetail struct {
	Project        models.Project          `json:"project"`
	KnowledgeCount int                     `json:"knowledge_count"`
	ActionItems    []models.ActionItem     `json:"action_items"`
	JiraLinks      []models.LinkedJiraItem `json:"jira_links"`
}

// --- Handlers ---

func (t *ProjectTools) ListProjects(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	projects, err := t.Store.ListProjects()
	if err != nil {
		return toolError("Failed to list projects: %v", err), nil, nil
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return toolJSON(projects)
}

func (t *ProjectTools) GetProject(_ context.Context, _ *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, any, error) {
	projectID, errResult := resolveProjectID(t.Session, input.ProjectID)
	if errResult != nil {
		return errResult, nil, nil
	}

	proj, err := t.Store.GetProject(projectID)
	if err != nil {
		return toolError("Failed to get project: %v", err), nil, nil
	}

	count, err := t.Store.CountKnowledge(projectID)
	if err != nil {
		return toolError("Failed to count knowledge: %v", err), nil, nil
	}
	items, err := t.Store.ListActionItems(projectID)
	if err != nil {
		return toolError("Failed to list action items: %v", err), nil, nil
	}
	links, err := t.Store.ListJiraLinks(projectID)
	if err != nil {
		return toolError("Failed to list Jira links: %v", err), nil, nil
	}

	return toolJSON(projectDetail{
		Project:        *proj,
		KnowledgeCount: count,
		ActionItems:    items,
		JiraLinks:      links,
	})
}

func (t *ProjectTools) SwitchProject(_ context.Context, _ *mcp.CallToolRequest, input SwitchProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID == "" {
		return toolError("Project ID is required"), nil, nil
	}

	proj, err := t.Store.GetProject(input.ProjectID)
	if err != nil {
		return toolError("Failed to switch project: %v", err), nil, nil
	}
	t.Session.SetActive(proj.ID, proj.Name)

	return toolJSON(proj)
}

func (t *ProjectTools) DeleteProject(_ context.Context, _ *mcp.CallToolRequest, input DeleteProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID == "" {
		return toolError("Project ID is required"), nil, nil
	}

	if err := t.Store.DeleteProject(input.ProjectID); err != nil {
		return toolError("Failed to delete project: %v", err), nil, nil
	}
	if id, _, ok := t.Session.Active(); ok && id == input.ProjectID {
		t.Session.Clear()
	}

	return toolText("Project deleted successfully."), nil, nil
}

func (t *ProjectTools) GetPreference(_ context.Context, _ *mcp.CallToolRequest, input GetPreferenceInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolError("Preference key is required"), nil, nil
	}

	value, ok, err := t.Store.GetPreference(input.Key)
	if err != nil {
		return toolError("Failed to get preference: %v", err), nil, nil
	}
	if !ok {
		return toolText("Preference not set."), nil, nil
	}
	return toolText(value), nil, nil
}

func (t *ProjectTools) SetPreference(_ context.Context, _ *mcp.CallToolRequest, input SetPreferenceInput) (*mcp.CallToolResult, any, error) {
	if input.Key == "" {
		return toolError("Preference key is required"), nil, nil
	}

	if err := t.Store.SetPreference(input.Key, input.Value); err != nil {
		return toolError("Failed to set preference: %v", err), nil, nil
	}
	return toolText("Preference saved."), nil, nil
}

// --- Helpers ---

// resolveProjectID prefers the explicit id, falling back to the session's
// active project.
func resolveProjectID(sess *session.Session, explicit string) (string, *mcp.CallToolResult) {
	if explicit != "" {
		return explicit, nil
	}
	if id, _, ok := sess.Active(); ok {
		return id, nil
	}
	return "", toolError("No active project. Pass project_id or use switch_project first.")
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
