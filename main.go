package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/projectstack/projectstack/internal/ai"
	"github.com/projectstack/projectstack/internal/config"
	"github.com/projectstack/projectstack/internal/jira"
	"github.com/projectstack/projectstack/internal/prd"
	"github.com/projectstack/projectstack/internal/server"
	"github.com/projectstack/projectstack/internal/storage"
	"github.com/projectstack/projectstack/internal/workflow"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	dataDir := flag.String("data-dir", "./data", "Directory for the SQLite database")
	fakeAI := flag.Bool("fake-ai", false, "Use the deterministic fake capability instead of OpenAI (offline mode)")
	flag.Parse()

	cfg := config.Load()

	store, err := storage.Open(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	var capability ai.Capability
	if *fakeAI {
		log.Println("Using fake AI capability (offline mode)")
		capability = &ai.Fake{}
	} else {
		capability, err = ai.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("Failed to initialize AI capability: %v", err)
		}
	}

	svc := &workflow.Service{Store: store, AI: capability}

	var jiraClient *jira.Client
	if cfg.JiraConfigured() {
		jiraClient = jira.NewClient(cfg.JiraHostURL, cfg.JiraUserEmail, cfg.JiraAPIKey)
		svc.Tickets = jiraClient
	} else {
		log.Println("Jira integration disabled (credentials not configured)")
	}

	if cfg.PRDConfigured() {
		svc.PRD = prd.NewClient(cfg.PRDTriggerURL, cfg.PRDAppBaseURL, cfg.PRDAPIKey, cfg.PRDAgentID)
	} else {
		log.Println("PRD agent disabled (credentials not configured)")
	}

	srv := server.New(store, svc, jiraClient)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		log.Println("ProjectStack MCP server starting (stdio)")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		log.Printf("ProjectStack MCP server listening on %s", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	default:
		log.Fatalf("Unknown transport: %s (use stdio or http)", *transport)
	}
}
