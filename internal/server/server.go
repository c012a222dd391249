package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/projectstack/projectstack/internal/jira"
	"github.com/projectstack/projectstack/internal/session"
	"github.com/projectstack/projectstack/internal/storage"
	"github.com/projectstack/projectstack/internal/tools"
	"github.com/projectstack/projectstack/internal/workflow"
)

// New creates a fully configured MCP server with all tools registered.
// jiraClient may be nil when the tracker integration is not configured.
func New(store *storage.Store, svc *workflow.Service, jiraClient *jira.Client) *mcp.Server {
	sess := session.New()

	it := &tools.IngestTools{Svc: svc, Jira: jiraClient, Store: store, Session: sess}
	pt := &tools.ProjectTools{Store: store, Session: sess}
	kt := &tools.KnowledgeTools{Store: store, Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "projectstack",
		Version: "0.1.0",
	}, nil)

	// Ingestion and AI tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ingest_text",
		Description: "Ingest free-form text: classify it into a new or existing project, store it as knowledge and extract action items",
	}, it.IngestText)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ingest_jira_ticket",
		Description: "Fetch a Jira ticket, ingest its content and link the ticket to the resulting project",
	}, it.IngestJiraTicket)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_jira",
		Description: "Search Jira issues with a JQL query; results mark tickets already linked to a project",
	}, it.SearchJira)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "check_jira_links",
		Description: "List the Jira keys of all tickets already linked to projects",
	}, it.CheckJiraLinks)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "chat_with_project",
		Description: "Ask a question answered from a project's accumulated knowledge",
	}, it.ChatWithProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate_prd",
		Description: "Trigger the external agent that drafts a PRD from the project's knowledge and store the resulting link",
	}, it.GeneratePRD)

	// Project management tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their derived summaries",
	}, pt.ListProjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_project",
		Description: "Get a project with its knowledge count, action items and linked Jira tickets",
	}, pt.GetProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "switch_project",
		Description: "Set the active project for the current session",
	}, pt.SwitchProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_project",
		Description: "Permanently delete a project and all its knowledge, action items and Jira links (irreversible)",
	}, pt.DeleteProject)

	// Knowledge and action item tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_knowledge",
		Description: "List a project's knowledge entries in chronological order",
	}, kt.ListKnowledge)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Full-text search over knowledge entries across all projects",
	}, kt.SearchKnowledge)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_action_items",
		Description: "List a project's action items",
	}, kt.ListActionItems)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_action_item_status",
		Description: "Mark an action item pending or done",
	}, kt.SetActionItemStatus)

	// Preference tools
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_preference",
		Description: "Get a stored user preference value by key",
	}, pt.GetPreference)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_preference",
		Description: "Store a user preference key/value pair",
	}, pt.SetPreference)

	return srv
}
