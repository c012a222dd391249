package ai

import (
	"context"
	"strings"
	"sync"
)

// Fake is a deterministic Capability for tests and offline runs. Responses
// can be scripted per call; without a script it falls back to simple
// rule-based behavior (substring match against project names, first line as
// summary).
type Fake struct {
	// ClassifyFunc overrides classification entirely when set.
	ClassifyFunc func(input ClassifyInput) (*Classification, error)
	// SummarizeFunc overrides summarization when set.
	SummarizeFunc func(knowledge string) (string, error)
	// ChatFunc overrides chat when set.
	ChatFunc func(query, knowledge string) (string, error)

	mu             sync.Mutex
	classifyCalls  []ClassifyInput
	summarizeCalls []string
	chatCalls      []string
}

// Classify records the call and applies the script or the rule-based default.
func (f *Fake) Classify(_ context.Context, input ClassifyInput) (*Classification, error) {
	f.mu.Lock()
	f.classifyCalls = append(f.classifyCalls, input)
	f.mu.Unlock()

	if f.ClassifyFunc != nil {
		return f.ClassifyFunc(input)
	}

	c := &Classification{
		ProjectName: generateName(input.Text),
		Summary:     firstLine(input.Text),
	}
	if input.ForceNewProject {
		return c, nil
	}

	lower := strings.ToLower(input.Text)
	for _, p := range input.ExistingProjects {
		if p.Name != "" && strings.Contains(lower, strings.ToLower(p.Name)) {
			c.ProjectID = p.ID
			c.ProjectName = p.Name
			return c, nil
		}
	}
	if len(input.ExistingProjects) > 0 {
		c.Suggestion = "This seems like it could be a new project. Would you like to create '" + c.ProjectName + "'?"
	}
	return c, nil
}

// SummarizeProject records the call and returns a deterministic summary.
func (f *Fake) SummarizeProject(_ context.Context, knowledge string) (string, error) {
	f.mu.Lock()
	f.summarizeCalls = append(f.summarizeCalls, knowledge)
	f.mu.Unlock()

	if f.SummarizeFunc != nil {
		return f.SummarizeFunc(knowledge)
	}
	return "Consolidated: " + firstLine(knowledge), nil
}

// Chat records the call and echoes a grounded-looking answer.
func (f *Fake) Chat(_ context.Context, query, knowledge string) (string, error) {
	f.mu.Lock()
	f.chatCalls = append(f.chatCalls, query)
	f.mu.Unlock()

	if f.ChatFunc != nil {
		return f.ChatFunc(query, knowledge)
	}
	return "Based on the project knowledge: " + firstLine(knowledge), nil
}

// ClassifyCalls returns a copy of the recorded classification inputs.
func (f *Fake) ClassifyCalls() []ClassifyInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ClassifyInput(nil), f.classifyCalls...)
}

// SummarizeCalls returns a copy of the recorded summarization inputs.
func (f *Fake) SummarizeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.summarizeCalls...)
}

// ChatCalls returns a copy of the recorded chat queries.
func (f *Fake) ChatCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.chatCalls...)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 120 {
		s = s[:120]
	}
	return strings.TrimSpace(s)
}

func generateName(text string) string {
	words := strings.Fields(firstLine(text))
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "Untitled Project"
	}
	return strings.Join(words, " ")
}
