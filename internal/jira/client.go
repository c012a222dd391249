package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a Jira Cloud instance with basic-auth credentials.
type Client struct {
	baseURL string
	email   string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Jira client for the given host (e.g.
// https://acme.atlassian.net).
func NewClient(baseURL, email, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchTicket retrieves one issue by key with the fields ingestion needs.
func (c *Client) FetchTicket(ctx context.Context, key string) (*Ticket, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=summary,description,comment,self", c.baseURL, url.PathEscape(key))

	var ticket Ticket
	if err := c.get(ctx, endpoint, &ticket); err != nil {
		return nil, fmt.Errorf("fetch ticket %s: %w", key, err)
	}
	return &ticket, nil
}

// SearchIssues runs a JQL query and returns matching issues.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]Ticket, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	endpoint := c.baseURL + "/rest/api/3/search/jql?jql=" + url.QueryEscape(jql) +
		"&fields=summary,description,status,assignee,key&maxResults=" + strconv.Itoa(maxResults)

	var payload struct {
		Issues []Ticket `json:"issues"`
	}
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	return payload.Issues, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("jira request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("jira api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
