// Package session holds the client's authentication state: an explicit
// Unauthenticated/Authenticated machine persisted on disk, initialized
// from storage on start, mutated on login, and torn down on logout or
// an auth failure from the backend.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/oan-pulse/pulse/internal/model"
)

// State is the session lifecycle state.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

type persisted struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Session is the stored user/token pair. All methods are safe for
// concurrent use.
type Session struct {
	mu    sync.Mutex
	path  string
	token string
	user  *model.User
}

// DefaultPath returns ~/.pulse/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pulse", "session.json"), nil
}

// Load reads the session file at path. A missing or unreadable file
// yields an unauthenticated session, not an error.
func Load(path string) *Session {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return s
	}
	s.token = p.Token
	s.user = p.User
	return s
}

// LoadDefault loads the session from the default path.
func LoadDefault() (*Session, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path), nil
}

// State returns Authenticated only when both a token and user exist.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && s.user != nil {
		return Authenticated
	}
	return Unauthenticated
}

// Token returns the bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the authenticated user, nil when unauthenticated.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetAuthenticated stores the user/token pair and persists it.
func (s *Session) SetAuthenticated(user *model.User, token string) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return s.save()
}

// SetUser replaces the stored user (a /auth/me refresh) and persists.
func (s *Session) SetUser(user *model.User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return s.save()
}

// Clear discards the session state and the file. Called on logout and
// on any 401/403 from the backend.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Session) save() error {
	s.mu.Lock()
	p := persisted{Token: s.token, User: s.user}
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
