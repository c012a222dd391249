package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// GeneratePRD sends a project's full knowledge to the external PRD agent,
// persists the returned conversation URL on the project and returns it.
// Calling again regenerates and overwrites the URL.
func (s *Service) GeneratePRD(ctx context.Context, projectID string) (string, error) {
	if s.PRD == nil {
		return "", errors.New("PRD agent is not configured")
	}

	entries, err := s.Store.ListKnowledge(projectID)
	if err != nil {
		return "", fmt.Errorf("load project knowledge: %w", err)
	}
	if len(entries) == 0 {
		return "", errors.New("no knowledge entries found for this project to generate a PRD")
	}

	contents := make([]string, len(entries))
	for i, e := range entries {
		contents[i] = e.Content
	}

	url, err := s.PRD.Trigger(ctx, strings.Join(contents, "\n\n"))
	if err != nil {
		return "", err
	}

	if err := s.Store.UpdateProjectPRDURL(projectID, url); err != nil {
		return "", fmt.Errorf("save PRD link: %w", err)
	}
	return url, nil
}
