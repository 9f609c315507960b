package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/oan-pulse/pulse/internal/api"
	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

type tokenHolder struct{ token string }

func (h *tokenHolder) Token() string { return h.token }

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return s, srv
}

func seedUser(t *testing.T, s *Server, email, password, role string, managerID *int64) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.insertID(`
		INSERT INTO users (email, password_hash, first_name, last_name, role, manager_id, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"user_id",
		email, string(hash), "Test", "User", role, managerID, 1)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// loginAs returns an api client authenticated as the given user.
func loginAs(t *testing.T, srv *httptest.Server, email, password string) (*api.Client, *model.User) {
	t.Helper()
	holder := &tokenHolder{}
	client := api.New(srv.URL, holder)

	user, token, err := client.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	holder.token = token
	return client, user
}

func TestLoginAndMe(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	client, user := loginAs(t, srv, "emp@oan.com", "pw123456")
	if user.Email != "emp@oan.com" || user.Role != model.RoleEmployee {
		t.Errorf("login user = %+v", user)
	}

	me, err := client.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if me.ID != user.ID {
		t.Errorf("me = %+v, want id %d", me, user.ID)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	holder := &tokenHolder{}
	client := api.New(srv.URL, holder)
	if _, _, err := client.Login(context.Background(), "emp@oan.com", "wrong"); err == nil {
		t.Error("bad password accepted")
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	client, _ := loginAs(t, srv, "emp@oan.com", "pw123456")
	if err := client.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Me(context.Background()); err == nil {
		t.Error("token survived logout")
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	_, srv := newTestServer(t)

	client := api.New(srv.URL, &tokenHolder{})
	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("expected 401")
	}
	if !api.IsAuthError(err) {
		t.Errorf("want auth error, got %v", err)
	}
}

func seedCatalog(t *testing.T, s *Server) (model.Project, model.Task) {
	t.Helper()
	clientID, err := s.insertID(
		"INSERT INTO clients (name, contact_email, status) VALUES (?, ?, ?)",
		"client_id", "Acme", "", "ACTIVE")
	if err != nil {
		t.Fatal(err)
	}
	projectID, err := s.insertID(
		"INSERT INTO projects (client_id, name, is_billable, hourly_rate, status) VALUES (?, ?, ?, ?, ?)",
		"project_id", clientID, "Website", 1, nil, "ACTIVE")
	if err != nil {
		t.Fatal(err)
	}
	taskID, err := s.insertID(
		"INSERT INTO tasks (project_id, name, status) VALUES (?, ?, ?)",
		"task_id", projectID, "Design", "ACTIVE")
	if err != nil {
		t.Fatal(err)
	}
	project := model.Project{ID: projectID, ClientID: clientID, Name: "Website", IsBillable: 1, Status: "ACTIVE"}
	task := model.Task{ID: taskID, ProjectID: projectID, Name: "Design", Status: "ACTIVE"}
	return project, task
}

func TestTimeEntryCRUD(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	ctx := context.Background()
	client, user := loginAs(t, srv, "emp@oan.com", "pw123456")
	project, task := seedCatalog(t, s)

	payload := timesheet.Payload{
		UserID:     user.ID,
		ProjectID:  project.ID,
		TaskID:     &task.ID,
		EntryDate:  "2024-01-03T00:00:00Z",
		Hours:      2.5,
		IsBillable: 1,
		CreatedBy:  user.ID,
	}
	created, err := client.CreateTimeEntry(ctx, payload)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("no id assigned")
	}
	if created.Status != model.StatusPending {
		t.Errorf("status = %q, want PENDING", created.Status)
	}
	if created.TaskID == nil || *created.TaskID != task.ID {
		t.Errorf("task_id = %v", created.TaskID)
	}

	// Day-scoped listing finds it; the neighboring day does not.
	entries, err := client.ListTimeEntries(ctx, api.EntryFilter{Day: "2024-01-03"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != created.ID {
		t.Errorf("day listing = %+v", entries)
	}
	entries, err = client.ListTimeEntries(ctx, api.EntryFilter{Day: "2024-01-04"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("neighboring day returned %+v", entries)
	}

	// Update drops the task and moves the entry a day later.
	payload.TaskID = nil
	payload.EntryDate = "2024-01-04T00:00:00Z"
	payload.Hours = 4
	updated, err := client.UpdateTimeEntry(ctx, created.ID, payload)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TaskID != nil {
		t.Errorf("task_id = %v after clearing", updated.TaskID)
	}
	if updated.Hours != 4 || updated.Day() != "2024-01-04" {
		t.Errorf("updated = %+v", updated)
	}

	if err := client.DeleteTimeEntry(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := client.GetTimeEntry(ctx, created.ID); err == nil {
		t.Error("entry survived delete")
	}
}

func TestWeekRefreshAgainstServer(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	ctx := context.Background()
	client, user := loginAs(t, srv, "emp@oan.com", "pw123456")
	project, _ := seedCatalog(t, s)

	for _, day := range []string{"2024-01-01", "2024-01-03", "2024-01-03"} {
		_, err := client.CreateTimeEntry(ctx, timesheet.Payload{
			UserID:    user.ID,
			ProjectID: project.ID,
			EntryDate: day + "T00:00:00Z",
			Hours:     3,
			CreatedBy: user.ID,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	pivot, err := timesheet.ParseDay("2024-01-03")
	if err != nil {
		t.Fatal(err)
	}
	week := timesheet.WeekDates(pivot)
	store := timesheet.NewWeekStore()
	buckets, ok := store.Refresh(ctx, week, client.EntriesForDay(user.ID))
	if !ok {
		t.Fatal("refresh discarded")
	}
	if got := timesheet.DayTotal(buckets, "2024-01-03"); got != 6 {
		t.Errorf("wednesday total = %v, want 6", got)
	}
	if got := timesheet.WeekTotal(buckets, week); got != 9 {
		t.Errorf("week total = %v, want 9", got)
	}
}

func TestManagerWorkflow(t *testing.T) {
	s, srv := newTestServer(t)
	managerID := seedUser(t, s, "mgr@oan.com", "pw123456", model.RoleManager, nil)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, &managerID)
	seedUser(t, s, "other@oan.com", "pw123456", model.RoleEmployee, nil)

	ctx := context.Background()
	emp, empUser := loginAs(t, srv, "emp@oan.com", "pw123456")
	project, _ := seedCatalog(t, s)

	entry, err := emp.CreateTimeEntry(ctx, timesheet.Payload{
		UserID:    empUser.ID,
		ProjectID: project.ID,
		EntryDate: "2024-01-03T00:00:00Z",
		Hours:     8,
		CreatedBy: empUser.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Employees cannot reach the manager surface.
	if _, err := emp.Team(ctx); !api.IsAuthError(err) {
		t.Errorf("employee reached manager route: %v", err)
	}

	mgr, _ := loginAs(t, srv, "mgr@oan.com", "pw123456")

	team, err := mgr.Team(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 1 || team[0].Email != "emp@oan.com" {
		t.Errorf("team = %+v", team)
	}

	pending, err := mgr.PendingApprovals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != entry.ID {
		t.Errorf("pending = %+v", pending)
	}

	if err := mgr.Approve(ctx, entry.ID); err != nil {
		t.Fatal(err)
	}
	got, err := emp.GetTimeEntry(ctx, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusApproved {
		t.Errorf("status = %q after approve", got.Status)
	}

	if err := mgr.Reject(ctx, entry.ID, "wrong project"); err != nil {
		t.Fatal(err)
	}
	got, err = emp.GetTimeEntry(ctx, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusRejected || got.RejectionReason != "wrong project" {
		t.Errorf("entry = %+v after reject", got)
	}

	stats, err := mgr.Stats(ctx, "2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalHours != 8 || stats.RejectedCount != 1 || stats.MemberCount != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestManagerCannotTouchForeignTeam(t *testing.T) {
	s, srv := newTestServer(t)
	managerID := seedUser(t, s, "mgr@oan.com", "pw123456", model.RoleManager, nil)
	otherMgrID := seedUser(t, s, "mgr2@oan.com", "pw123456", model.RoleManager, nil)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, &managerID)
	_ = otherMgrID

	ctx := context.Background()
	emp, empUser := loginAs(t, srv, "emp@oan.com", "pw123456")
	project, _ := seedCatalog(t, s)
	entry, err := emp.CreateTimeEntry(ctx, timesheet.Payload{
		UserID:    empUser.ID,
		ProjectID: project.ID,
		EntryDate: "2024-01-03T00:00:00Z",
		Hours:     2,
		CreatedBy: empUser.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	mgr2, _ := loginAs(t, srv, "mgr2@oan.com", "pw123456")
	if err := mgr2.Approve(ctx, entry.ID); err == nil {
		t.Error("foreign manager approved team entry")
	}
}

func TestUserAdminEndpoints(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "admin@oan.com", "pw123456", model.RoleAdmin, nil)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	ctx := context.Background()
	admin, _ := loginAs(t, srv, "admin@oan.com", "pw123456")

	users, err := admin.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}

	created, err := admin.CreateUser(ctx, model.User{
		Email: "new@oan.com", FirstName: "New", LastName: "Hire", Role: model.RoleEmployee,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 || created.Email != "new@oan.com" {
		t.Errorf("created = %+v", created)
	}

	// Duplicate email conflicts.
	if _, err := admin.CreateUser(ctx, model.User{Email: "new@oan.com"}); err == nil {
		t.Error("duplicate email accepted")
	}

	// Non-admins are shut out.
	emp, _ := loginAs(t, srv, "emp@oan.com", "pw123456")
	if _, err := emp.ListUsers(ctx); !api.IsAuthError(err) {
		t.Errorf("employee listed users: %v", err)
	}
}

func TestCatalogPermissions(t *testing.T) {
	s, srv := newTestServer(t)
	seedUser(t, s, "mgr@oan.com", "pw123456", model.RoleManager, nil)
	seedUser(t, s, "emp@oan.com", "pw123456", model.RoleEmployee, nil)

	ctx := context.Background()
	mgr, _ := loginAs(t, srv, "mgr@oan.com", "pw123456")

	cl, err := mgr.CreateClient(ctx, model.Client{Name: "Acme"})
	if err != nil {
		t.Fatal(err)
	}
	project, err := mgr.CreateProject(ctx, model.Project{ClientID: cl.ID, Name: "Website", IsBillable: 1})
	if err != nil {
		t.Fatal(err)
	}
	task, err := mgr.CreateTask(ctx, model.Task{ProjectID: project.ID, Name: "Design"})
	if err != nil {
		t.Fatal(err)
	}

	// Everyone can read the catalog.
	emp, _ := loginAs(t, srv, "emp@oan.com", "pw123456")
	projects, err := emp.ListProjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 1 || projects[0].ID != project.ID {
		t.Errorf("projects = %+v", projects)
	}
	tasks, err := emp.ListTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Errorf("tasks = %+v", tasks)
	}

	// Only managers and admins may change it.
	if _, err := emp.CreateProject(ctx, model.Project{ClientID: cl.ID, Name: "Rogue"}); !api.IsAuthError(err) {
		t.Errorf("employee created project: %v", err)
	}
	if err := emp.DeleteClient(ctx, cl.ID); !api.IsAuthError(err) {
		t.Errorf("employee deleted client: %v", err)
	}

	if err := mgr.DeleteTask(ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	tasks, err = emp.ListTasks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("task survived delete: %+v", tasks)
	}
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health = %d", resp.StatusCode)
	}
}
