// Package session holds the process-wide state shared by the orchestration
// components: the authenticated user, the latest enrichment artifact and the
// current interview handle. All reads go through immutable snapshots and all
// writes through explicit update calls, so last-write-wins is the only merge
// semantic the store knows.
package session

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotAuthenticated is returned by orchestration calls invoked without an
// authenticated identity carrying a name and email. It always fires before
// any network call.
var ErrNotAuthenticated = errors.New("not authenticated: a logged-in user with name and email is required")

type User struct {
	ID    int
	Name  string
	Email string
	Role  string
}

// State is an immutable snapshot of the store.
type State struct {
	User          *User
	ResumeSummary string
	Skills        []string
	InterviewID   int
}

// Authenticated reports whether the snapshot carries a usable identity.
func (s State) Authenticated() bool {
	return s.User != nil &&
		strings.TrimSpace(s.User.Name) != "" &&
		strings.TrimSpace(s.User.Email) != ""
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// Login seeds the store with the authenticated user, discarding any state
// left over from a previous identity.
func (s *Store) Login(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{User: &user}
}

// Logout clears the store entirely.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
}

// Snapshot returns a copy of the current state. Mutating the returned value
// never affects the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.clone()
}

// SetEnrichment overwrites the stored enrichment artifact. The previous
// artifact is replaced wholesale, never merged.
func (s *Store) SetEnrichment(resumeSummary string, skills []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ResumeSummary = resumeSummary
	s.state.Skills = append([]string(nil), skills...)
}

// SetInterview records the handle of the most recently created session.
func (s *Store) SetInterview(interviewID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.InterviewID = interviewID
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	out.Skills = append([]string(nil), s.Skills...)

	return out
}
