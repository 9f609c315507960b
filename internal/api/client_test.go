package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oan-pulse/pulse/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticToken(token))
}

func TestBearerHeaderOnAuthenticatedCalls(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(itemsEnvelope[model.Project]{})
	})

	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestNoBearerHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(itemsEnvelope[model.Project]{})
	})

	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want unset", gotAuth)
	}
}

func TestManagerRoutesCarryQueryToken(t *testing.T) {
	var managerToken, plainToken string
	c := newTestClient(t, "tok-m", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/manager/team" {
			managerToken = r.URL.Query().Get("token_in")
			json.NewEncoder(w).Encode(map[string][]model.User{"team_members": {}})
			return
		}
		plainToken = r.URL.Query().Get("token_in")
		json.NewEncoder(w).Encode(itemsEnvelope[model.Project]{})
	})

	if _, err := c.Team(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if managerToken != "tok-m" {
		t.Errorf("manager token_in = %q, want tok-m", managerToken)
	}
	if plainToken != "" {
		t.Errorf("non-manager route leaked token_in = %q", plainToken)
	}
}

func TestDayFilterQueryEncoding(t *testing.T) {
	var gotQ string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(itemsEnvelope[model.TimeEntry]{})
	})

	if _, err := c.ListTimeEntries(context.Background(), EntryFilter{Day: "2024-01-03"}); err != nil {
		t.Fatal(err)
	}

	var filter map[string]map[string]string
	if err := json.Unmarshal([]byte(gotQ), &filter); err != nil {
		t.Fatalf("q is not JSON: %q", gotQ)
	}
	bounds := filter["entry_date"]
	if bounds["$gte"] != "2024-01-03T00:00:00" || bounds["$lte"] != "2024-01-03T23:59:59" {
		t.Errorf("bounds = %v", bounds)
	}
}

func TestListTimeEntriesRefiltersDay(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		// The hosted date comparison can match neighboring days;
		// emulate that sloppiness.
		json.NewEncoder(w).Encode(itemsEnvelope[model.TimeEntry]{Items: []model.TimeEntry{
			{ID: 1, EntryDate: "2024-01-03T00:00:00Z", Hours: 2},
			{ID: 2, EntryDate: "2024-01-04T00:00:00Z", Hours: 3},
		}})
	})

	entries, err := c.ListTimeEntries(context.Background(), EntryFilter{Day: "2024-01-03"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != 1 {
		t.Errorf("entries = %+v, want only the 2024-01-03 row", entries)
	}
}

func TestEntriesForDayScopesToUser(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(itemsEnvelope[model.TimeEntry]{Items: []model.TimeEntry{
			{ID: 1, UserID: 5, EntryDate: "2024-01-03T00:00:00Z"},
			{ID: 2, UserID: 9, EntryDate: "2024-01-03T00:00:00Z"},
		}})
	})

	fetch := c.EntriesForDay(5)
	entries, err := fetch(context.Background(), "2024-01-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].UserID != 5 {
		t.Errorf("entries = %+v, want only user 5", entries)
	}
}

func TestAuthErrorFiresTeardownHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	torn := false
	c := New(srv.URL, staticToken("stale"), WithAuthErrorHandler(func() { torn = true }))

	_, err := c.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !torn {
		t.Error("auth-error hook not fired")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError = false for %v", err)
	}
}

func TestIsAuthErrorIgnoresOtherStatuses(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := c.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if IsAuthError(err) {
		t.Error("500 classified as auth error")
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@oan.com" || req.Password != "pw" {
			json.NewEncoder(w).Encode(loginResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		json.NewEncoder(w).Encode(loginResponse{
			Success: true,
			Token:   "fresh-token",
			User:    &model.User{ID: 7, Email: req.Email, Role: model.RoleEmployee},
		})
	})

	user, token, err := c.Login(context.Background(), "a@oan.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if token != "fresh-token" || user.ID != 7 {
		t.Errorf("got user=%+v token=%q", user, token)
	}

	if _, _, err := c.Login(context.Background(), "a@oan.com", "wrong"); err == nil {
		t.Error("bad credentials did not error")
	}
}

func TestMeSendsTokenInQuery(t *testing.T) {
	var gotToken string
	c := newTestClient(t, "tok-me", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		json.NewEncoder(w).Encode(meResponse{Success: true, User: &model.User{ID: 3}})
	})

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gotToken != "tok-me" {
		t.Errorf("token = %q", gotToken)
	}
	if user.ID != 3 {
		t.Errorf("user = %+v", user)
	}
}

func TestRejectSendsReason(t *testing.T) {
	var body map[string]string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/manager/reject/42" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Reject(context.Background(), 42, "missing notes"); err != nil {
		t.Fatal(err)
	}
	if body["reason"] != "missing notes" {
		t.Errorf("body = %v", body)
	}
}
