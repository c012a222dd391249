package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/projectstack/projectstack/internal/models"
	"github.com/projectstack/projectstack/internal/session"
	"github.com/projectstack/projectstack/internal/storage"
)

// KnowledgeTools holds references needed by knowledge and action item
// handlers.
type KnowledgeTools struct {
	Store   *storage.Store
	Session *session.Session
}

// --- Input types ---

type ListKnowledgeInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID; defaults to the active project"`
}

type SearchKnowledgeInput struct {
	Query string `json:"query" jsonschema:"Full-text query over knowledge content (supports FTS5 syntax: AND, OR, NOT, prefix*)"`
}

type ListActionItemsInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Project ID; defaults to the active project"`
}

type SetActionItemStatusInput struct {
	ID     string `json:"id" jsonschema:"Action item ID"`
	Status string `json:"status" jsonschema:"New status: pending or done"`
}

// --- Handlers ---

func (t *KnowledgeTools) ListKnowledge(_ context.Context, _ *mcp.CallToolRequest, input ListKnowledgeInput) (*mcp.CallToolResult, any, error) {
	projectID, errResult := resolveProjectID(t.Session, input.ProjectID)
	if errResult != nil {
		return errResult, nil, nil
	}

	entries, err := t.Store.ListKnowledge(projectID)
	if err != nil {
		return toolError("Failed to list knowledge: %v", err), nil, nil
	}
	if entries == nil {
		entries = []models.KnowledgeEntry{}
	}
	return toolJSON(entries)
}

func (t *KnowledgeTools) SearchKnowledge(_ context.Context, _ *mcp.CallToolRequest, input SearchKnowledgeInput) (*mcp.CallToolResult, any, error) {
	if input.Query == "" {
		return toolError("Search query is required"), nil, nil
	}

	entries, err := t.Store.SearchKnowledge(input.Query)
	if err != nil {
		return toolError("Search failed: %v", err), nil, nil
	}
	if entries == nil {
		entries = []models.KnowledgeEntry{}
	}
	return toolJSON(entries)
}

func (t *KnowledgeTools) ListActionItems(_ context.Context, _ *mcp.CallToolRequest, input ListActionItemsInput) (*mcp.CallToolResult, any, error) {
	projectID, errResult := resolveProjectID(t.Session, input.ProjectID)
	if errResult != nil {
		return errResult, nil, nil
	}

	items, err := t.Store.ListActionItems(projectID)
	if err != nil {
		return toolError("Failed to list action items: %v", err), nil, nil
	}
	if items == nil {
		items = []models.ActionItem{}
	}
	return toolJSON(items)
}

func (t *KnowledgeTools) SetActionItemStatus(_ context.Context, _ *mcp.CallToolRequest, input SetActionItemStatusInput) (*mcp.CallToolResult, any, error) {
	if input.ID == "" {
		return toolError("Action item ID is required"), nil, nil
	}

	item, err := t.Store.UpdateActionItemStatus(input.ID, input.Status)
	if err != nil {
		return toolError("Failed to update action item: %v", err), nil, nil
	}
	return toolJSON(item)
}
