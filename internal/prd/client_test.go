package prd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "api-key-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			AgentID string `json:"agent_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user", body.Message.Role)
		assert.Equal(t, "all project knowledge", body.Message.Content)
		assert.Equal(t, "agent-1", body.AgentID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"conversation_id":"conv-9","agent_id":"agent-1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "https://agents.example.com", "api-key-123", "agent-1")
	url, err := c.Trigger(context.Background(), "all project knowledge")
	require.NoError(t, err)
	assert.Equal(t, "https://agents.example.com/agent-1/conv-9", url)
}

func TestTriggerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "https://agents.example.com", "k", "a")
	_, err := c.Trigger(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestTriggerInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "https://agents.example.com", "k", "a")
	_, err := c.Trigger(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}
