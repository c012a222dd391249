package jira

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTicket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/PROJ-1", r.URL.Path)
		assert.Equal(t, "summary,description,comment,self", r.URL.Query().Get("fields"))

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("pm@acme.com:secret"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "10001",
			"key": "PROJ-1",
			"self": "https://acme.atlassian.net/rest/api/3/issue/10001",
			"fields": {
				"summary": "Fix login",
				"description": {"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"broken"}]}]},
				"comment": {"comments":[{"body":{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"ack"}]}]}}]}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pm@acme.com", "secret")
	ticket, err := c.FetchTicket(context.Background(), "PROJ-1")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-1", ticket.Key)
	assert.Equal(t, "Fix login", ticket.Fields.Summary)
	assert.Equal(t, "broken", FlattenADF(ticket.Fields.Description))
	require.Len(t, ticket.Fields.Comment.Comments, 1)
}

func TestFetchTicketError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["Issue does not exist"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pm@acme.com", "secret")
	_, err := c.FetchTicket(context.Background(), "PROJ-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Issue does not exist")
}

func TestSearchIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/search/jql", r.URL.Path)
		assert.Equal(t, "project = PROJ", r.URL.Query().Get("jql"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issues":[
			{"key":"PROJ-1","fields":{"summary":"Fix login","status":{"name":"In Progress"}}},
			{"key":"PROJ-2","fields":{"summary":"Add SSO","status":{"name":"To Do"}}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pm@acme.com", "secret")
	issues, err := c.SearchIssues(context.Background(), "project = PROJ", 10)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "PROJ-1", issues[0].Key)
	assert.Equal(t, "In Progress", issues[0].Fields.Status.Name)
}
