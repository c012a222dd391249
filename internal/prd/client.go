// Package prd triggers an external agent that drafts a product-requirements
// document from a project's accumulated knowledge.
package prd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fires the agent-trigger endpoint and builds the conversation URL
// where the generated document can be followed.
type Client struct {
	triggerURL string
	appBaseURL string
	apiKey     string
	agentID    string
	http       *http.Client
}

// NewClient builds a PRD trigger client. appBaseURL is the human-facing
// location conversations live under.
func NewClient(triggerURL, appBaseURL, apiKey, agentID string) *Client {
	return &Client{
		triggerURL: triggerURL,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		apiKey:     apiKey,
		agentID:    agentID,
		http:       &http.Client{Timeout: 60 * time.Second},
	}
}

type triggerRequest struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	AgentID string `json:"agent_id"`
}

type triggerResponse struct {
	ConversationID string `json:"conversation_id"`
	AgentID        string `json:"agent_id"`
}

// Trigger sends the project's full knowledge as the agent message and
// returns the URL of the resulting conversation.
func (c *Client) Trigger(ctx context.Context, content string) (string, error) {
	var reqBody triggerRequest
	reqBody.Message.Role = "user"
	reqBody.Message.Content = content
	reqBody.AgentID = c.agentID

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode trigger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.triggerURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build trigger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("trigger agent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read trigger response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("agent trigger returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr triggerResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("decode trigger response: %w", err)
	}
	if tr.ConversationID == "" || tr.AgentID == "" {
		return "", fmt.Errorf("invalid response from PRD agent: missing conversation_id or agent_id")
	}

	return fmt.Sprintf("%s/%s/%s", c.appBaseURL, tr.AgentID, tr.ConversationID), nil
}
