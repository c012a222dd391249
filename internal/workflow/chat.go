package workflow

import (
	"context"
	"log/slog"
	"strings"
)

// Chat answers a question grounded in one project's accumulated knowledge.
// Failures come back as apologetic answer text rather than errors, so the
// conversation surface never breaks.
func (s *Service) Chat(ctx context.Context, projectID, query string) string {
	entries, err := s.Store.ListKnowledge(projectID)
	if err != nil {
		slog.Error("chat: load knowledge failed", "project_id", projectID, "error", err)
		return "I'm sorry, I couldn't access the project knowledge."
	}

	contents := make([]string, len(entries))
	for i, e := range entries {
		contents[i] = e.Content
	}

	response, err := s.AI.Chat(ctx, query, strings.Join(contents, knowledgeSeparator))
	if err != nil {
		slog.Error("chat: capability failed", "project_id", projectID, "error", err)
		return "I'm having trouble thinking right now. Please try again later."
	}
	return response
}
