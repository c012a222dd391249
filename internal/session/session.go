package session

import (
	"sync"
)

// Session tracks the active project for an MCP session, so tools like chat
// can omit the project id after an ingestion or an explicit switch.
type Session struct {
	mu          sync.Mutex
	projectID   string
	projectName string
}

// New creates an empty session with no active project.
func New() *Session {
	return &Session{}
}

// SetActive records the project subsequent calls default to.
func (s *Session) SetActive(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID = id
	s.projectName = name
}

// Active returns the current project, or ok=false if none is set.
func (s *Session) Active() (id, name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.projectID == "" {
		return "", "", false
	}
	return s.projectID, s.projectName, true
}

// Clear resets the session state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID = ""
	s.projectName = ""
}
