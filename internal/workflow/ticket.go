package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/projectstack/projectstack/internal/jira"
)

// TicketResult is the outcome of ingesting an external tracker ticket.
type TicketResult struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"project_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// IngestTicket fetches a ticket, flattens it to text, runs it through the
// ingestion pipeline and records the link between the ticket and the
// resulting project. If ingestion does not yield a project (including the
// ambiguous-suggestion short-circuit) the whole operation fails; a ticket is
// never processed without being recorded as linked.
func (s *Service) IngestTicket(ctx context.Context, key string, forceNewProject bool) (*TicketResult, error) {
	if key == "" {
		return nil, errors.New("ticket key is required")
	}
	if s.Tickets == nil {
		return nil, errors.New("jira integration is not configured")
	}

	ticket, err := s.Tickets.FetchTicket(ctx, key)
	if err != nil {
		return nil, err
	}

	result, err := s.Ingest(ctx, jira.FormatTicket(ticket), forceNewProject)
	if err != nil {
		return nil, fmt.Errorf("ingest ticket content: %w", err)
	}
	if !result.Success || result.ProjectID == "" {
		if result.Message != "" {
			return nil, fmt.Errorf("failed to ingest ticket content: %s", result.Message)
		}
		return nil, errors.New("failed to ingest ticket content")
	}

	if _, err := s.Store.InsertJiraLink(result.ProjectID, ticket.Key, ticket.Fields.Summary, jira.BrowseURL(ticket)); err != nil {
		return nil, fmt.Errorf("save ticket link: %w", err)
	}

	return &TicketResult{
		Success:   true,
		ProjectID: result.ProjectID,
		Message:   "Ticket linked successfully.",
	}, nil
}
