package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oan-pulse/pulse/internal/model"
)

func tempSessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoadMissingFileIsUnauthenticated(t *testing.T) {
	s := Load(tempSessionPath(t))
	if s.State() != Unauthenticated {
		t.Error("missing file should load unauthenticated")
	}
	if s.Token() != "" || s.User() != nil {
		t.Error("expected empty session")
	}
}

func TestLoadCorruptFileIsUnauthenticated(t *testing.T) {
	path := tempSessionPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if Load(path).State() != Unauthenticated {
		t.Error("corrupt file should load unauthenticated")
	}
}

func TestLoginRoundTrip(t *testing.T) {
	path := tempSessionPath(t)
	s := Load(path)

	user := &model.User{ID: 7, Email: "a@oan.com", Role: model.RoleEmployee}
	if err := s.SetAuthenticated(user, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if s.State() != Authenticated {
		t.Error("want Authenticated after login")
	}

	reloaded := Load(path)
	if reloaded.State() != Authenticated {
		t.Fatal("persisted session did not survive reload")
	}
	if reloaded.Token() != "tok-1" {
		t.Errorf("token = %q", reloaded.Token())
	}
	if got := reloaded.User(); got == nil || got.ID != 7 || got.Email != "a@oan.com" {
		t.Errorf("user = %+v", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := tempSessionPath(t)
	s := Load(path)
	if err := s.SetAuthenticated(&model.User{ID: 1}, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.State() != Unauthenticated {
		t.Error("want Unauthenticated after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still present after clear")
	}

	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestTokenOnlyIsNotAuthenticated(t *testing.T) {
	path := tempSessionPath(t)
	if err := os.WriteFile(path, []byte(`{"token":"orphan"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if Load(path).State() != Unauthenticated {
		t.Error("token without user must not count as authenticated")
	}
}
