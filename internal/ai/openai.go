package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// maxKnowledgeChars caps the concatenated knowledge context sent to the
// model. When over budget the head is dropped so the most recent entries
// survive.
const maxKnowledgeChars = 24000

// OpenAI implements Capability against an OpenAI-compatible chat completions
// API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds the production capability client.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not set")
	}
	if model == "" {
		model = "gpt-4o-mini"
		slog.Warn("model not set, defaulting to gpt-4o-mini")
	}
	slog.Info("initializing OpenAI client", "model", model)
	return &OpenAI{client: openai.NewClient(apiKey), model: model}, nil
}

const classifySystemPrompt = `You are an intelligent assistant helping a Product Manager organize project-related content. Your task is to process a piece of text and determine which project it belongs to, generate a summary, and extract action items.

Follow these rules:

1. Review the user's intent:
   - If newProject is true, you MUST treat the input as the start of a new project.
   - If newProject is false, you MUST attempt to classify the text into one of the existing projects.

2. If creating a new project (newProject: true):
   - Generate a clear and concise project name based on the input text.
   - Set projectName to this new name.
   - Set projectId to null. Do not try to match it with any existing project.

3. If classifying into an existing project (newProject: false):
   - Analyze the text and compare its meaning and context with the name and summary of each existing project.
   - Find the best thematic and semantic match. Be conservative; prefer attaching content to an existing project if it aligns thematically.
   - If a strong match is found: set projectName to the matched project's name and projectId to its ID.
   - If NO strong match is found: set projectName to a generated name for a potential new project, set projectId to null, and set the suggestion field to a gentle message like: "This seems like it could be a new project. Would you like to create '[Generated Project Name]'?"

4. For ALL cases:
   - Generate a short, factual, one-line summary of the input text.
   - Extract any concise, direct action items or reminders for the user from the text.

Respond with a single JSON object with keys: projectName (string), projectId (string or null), summary (string), actionItems (array of strings), suggestion (string, optional).`

// Classify asks the model to assign text to a project and extract a summary
// and action items, then sanitizes the result against the supplied catalogue.
func (o *OpenAI) Classify(ctx context.Context, input ClassifyInput) (*Classification, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "newProject: %t\n\n", input.ForceNewProject)
	b.WriteString("Existing Projects:\n")
	if len(input.ExistingProjects) == 0 {
		b.WriteString("- None\n")
	} else {
		for _, p := range input.ExistingProjects {
			fmt.Fprintf(&b, "- ID: %s, Name: %s, Summary: %s\n", p.ID, p.Name, p.Summary)
		}
	}
	b.WriteString("\nInput Text:\n")
	b.WriteString(input.Text)

	raw, err := o.completeJSON(ctx, classifySystemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return parseClassification(raw, input)
}

const summarizeSystemPrompt = `You are an expert at synthesizing information. Below is a collection of all notes and documents for a project.
Your task is to read all of it and generate a single, concise, one-line summary that accurately represents the current state and core purpose of the entire project.

Respond with a single JSON object with one key: newSummary (string).`

// SummarizeProject derives one consolidated summary line from a project's
// full concatenated knowledge.
func (o *OpenAI) SummarizeProject(ctx context.Context, knowledge string) (string, error) {
	raw, err := o.completeJSON(ctx, summarizeSystemPrompt, "Project Knowledge:\n"+truncateHead(knowledge, maxKnowledgeChars))
	if err != nil {
		return "", fmt.Errorf("summarize project: %w", err)
	}

	var payload struct {
		NewSummary string `json:"newSummary"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return "", fmt.Errorf("summarize project: decode response: %w", err)
	}
	return strings.TrimSpace(payload.NewSummary), nil
}

const chatSystemPrompt = `You are the AI project assistant.

Use the provided context (meeting notes, documents, and summaries) to answer the user's question clearly and concisely.
Be factual and reference past project updates if relevant.`

// Chat answers a question grounded in the project's knowledge. Stateless per
// call; any multi-turn history is the caller's responsibility.
func (o *OpenAI) Chat(ctx context.Context, query, knowledge string) (string, error) {
	prompt := fmt.Sprintf("Context: %s\n\nQuestion: %s", truncateHead(knowledge, maxKnowledgeChars), query)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		return "", fmt.Errorf("chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat: model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// completeJSON runs one chat completion in JSON-object mode and returns the
// raw message content.
func (o *OpenAI) completeJSON(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseClassification decodes the model's JSON and enforces the parts of the
// contract the model cannot be trusted with: a forced new project never
// carries a project id, and a returned id only counts when it resolves in the
// supplied catalogue (in which case the stored name wins over the generated
// one).
func parseClassification(raw string, input ClassifyInput) (*Classification, error) {
	var payload struct {
		ProjectName string   `json:"projectName"`
		ProjectID   *string  `json:"projectId"`
		Summary     string   `json:"summary"`
		ActionItems []string `json:"actionItems"`
		Suggestion  string   `json:"suggestion"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}

	c := &Classification{
		ProjectName: strings.TrimSpace(payload.ProjectName),
		Summary:     strings.TrimSpace(payload.Summary),
		ActionItems: payload.ActionItems,
		Suggestion:  strings.TrimSpace(payload.Suggestion),
	}
	if payload.ProjectID != nil {
		c.ProjectID = strings.TrimSpace(*payload.ProjectID)
	}

	if input.ForceNewProject {
		c.ProjectID = ""
		return c, nil
	}

	if c.ProjectID != "" {
		matched := false
		for _, p := range input.ExistingProjects {
			if p.ID == c.ProjectID {
				c.ProjectName = p.Name
				matched = true
				break
			}
		}
		if !matched {
			slog.Warn("classifier returned unknown project id, treating as no match", "project_id", c.ProjectID)
			c.ProjectID = ""
		}
	}
	return c, nil
}

// extractJSON pulls the outermost JSON object out of a model response that
// may be wrapped in markdown fences or prose.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// truncateHead drops the start of s so at most max characters remain. The
// tail is kept because knowledge is concatenated chronologically and recent
// entries matter most.
func truncateHead(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
