package discovery

import "sync"

// Status is the client-visible loading state of the panel's render cycle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusFetching   Status = "fetching"
	StatusRefreshing Status = "refreshing"
	StatusError      Status = "error"
)

// Session sequences the fetch/display cycle for the panel UI: idle ->
// fetching -> refreshing -> idle, with error reachable from either active
// state and retry leading back to fetching. It carries no business invariants
// beyond that ordering.
type Session struct {
	mu     sync.Mutex
	status Status
}

func NewSession() *Session {
	return &Session{status: StatusIdle}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// BeginFetch enters the fetching state from idle or error (retry).
func (s *Session) BeginFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFetching
}

// BeginRefresh marks an in-place refresh of already-displayed content.
func (s *Session) BeginRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusRefreshing
}

// Done returns to idle.
func (s *Session) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
}

// Fail records an error; Retry or BeginFetch leaves it.
func (s *Session) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusError
}

// Retry transitions error back to fetching.
func (s *Session) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusError {
		s.status = StatusFetching
	}
}
