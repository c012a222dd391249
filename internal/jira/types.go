// Package jira wraps the Jira Cloud REST v3 API: fetching and searching
// issues and flattening their Atlassian Document Format bodies to plain text.
package jira

// ADFNode is one node of an Atlassian Document Format tree. Text nodes carry
// content; container nodes carry children.
type ADFNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// Ticket is a Jira issue with the fields the ingestion path needs.
type Ticket struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`

	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Description *ADFNode `json:"description"`
		Comment     *struct {
			Comments []struct {
				Body *ADFNode `json:"body"`
			} `json:"comments"`
		} `json:"comment"`
	} `json:"fields"`
}
