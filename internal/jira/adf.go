package jira

import (
	"fmt"
	"regexp"
	"strings"
)

// FlattenADF converts an ADF tree to plain text: depth-first traversal,
// text node content concatenated, a line break after each paragraph or
// heading container.
func FlattenADF(node *ADFNode) string {
	if node == nil || len(node.Content) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range node.Content {
		flatten(&node.Content[i], &b)
	}
	return strings.TrimSpace(b.String())
}

func flatten(node *ADFNode, b *strings.Builder) {
	if node.Type == "text" {
		b.WriteString(node.Text)
		return
	}
	if len(node.Content) == 0 {
		return
	}
	for i := range node.Content {
		flatten(&node.Content[i], b)
	}
	if node.Type == "paragraph" || node.Type == "heading" {
		b.WriteByte('\n')
	}
}

// FormatTicket renders a ticket as the Title / Description / Comments plain
// text block fed to ingestion. Missing pieces get literal placeholders so the
// output is deterministic.
func FormatTicket(t *Ticket) string {
	summary := t.Fields.Summary
	if summary == "" {
		summary = "No summary."
	}

	description := "No description."
	if t.Fields.Description != nil {
		if text := FlattenADF(t.Fields.Description); text != "" {
			description = text
		}
	}

	commentsText := "No comments."
	if t.Fields.Comment != nil && len(t.Fields.Comment.Comments) > 0 {
		parts := make([]string, len(t.Fields.Comment.Comments))
		for i, c := range t.Fields.Comment.Comments {
			body := "Empty comment."
			if c.Body != nil {
				if text := FlattenADF(c.Body); text != "" {
					body = text
				}
			}
			parts[i] = fmt.Sprintf("Comment %d:\n%s", i+1, body)
		}
		commentsText = strings.Join(parts, "\n\n---\n\n")
	}

	return fmt.Sprintf("Title: %s\n\nDescription:\n%s\n\nComments:\n%s", summary, description, commentsText)
}

var issueAPIPath = regexp.MustCompile(`/rest/api/3/issue/\d+$`)

// BrowseURL derives the human-facing ticket URL from the issue's API self
// link.
func BrowseURL(t *Ticket) string {
	return issueAPIPath.ReplaceAllString(t.Self, "/browse/"+t.Key)
}
