// Package config collects environment-driven settings for the external
// integrations: the generative model, the Jira tracker and the PRD agent.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every externally-configured value. Zero-valued integration
// blocks mean the integration is disabled, not broken.
type Config struct {
	OpenAIAPIKey string
	OpenAIModel  string

	JiraHostURL   string
	JiraUserEmail string
	JiraAPIKey    string

	PRDAPIKey     string
	PRDAgentID    string
	PRDTriggerURL string
	PRDAppBaseURL string
}

// Load reads an optional .env file and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	return &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),

		JiraHostURL:   os.Getenv("JIRA_HOST_URL"),
		JiraUserEmail: os.Getenv("JIRA_USER_EMAIL"),
		JiraAPIKey:    os.Getenv("JIRA_API_KEY"),

		PRDAPIKey:     os.Getenv("PRD_API_KEY"),
		PRDAgentID:    os.Getenv("PRD_AGENT_ID"),
		PRDTriggerURL: os.Getenv("PRD_TRIGGER_URL"),
		PRDAppBaseURL: os.Getenv("PRD_APP_BASE_URL"),
	}
}

// JiraConfigured reports whether all Jira credentials are present.
func (c *Config) JiraConfigured() bool {
	return c.JiraHostURL != "" && c.JiraUserEmail != "" && c.JiraAPIKey != ""
}

// PRDConfigured reports whether the PRD agent trigger is fully configured.
func (c *Config) PRDConfigured() bool {
	return c.PRDAPIKey != "" && c.PRDAgentID != "" && c.PRDTriggerURL != "" && c.PRDAppBaseURL != ""
}
