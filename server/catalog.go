package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/oan-pulse/pulse/internal/model"
)

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (s *Server) handleListProjects(c echo.Context) error {
	rows, err := s.db.Query("SELECT project_id, client_id, name, is_billable, hourly_rate, status FROM projects ORDER BY project_id")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		projects = append(projects, p)
	}
	return c.JSON(http.StatusOK, itemsResponse{Items: projects})
}

func (s *Server) handleCreateProject(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageProjects) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	var p model.Project
	if err := c.Bind(&p); err != nil || p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if p.Status == "" {
		p.Status = "ACTIVE"
	}
	id, err := s.insertID(`
		INSERT INTO projects (client_id, name, is_billable, hourly_rate, status)
		VALUES (?, ?, ?, ?, ?)`,
		"project_id",
		p.ClientID, p.Name, p.IsBillable, p.HourlyRate, p.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	p.ID = id
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageProjects) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var p model.Project
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	res, err := s.db.Exec(s.bind(`
		UPDATE projects SET client_id = ?, name = ?, is_billable = ?, hourly_rate = ?, status = ?
		WHERE project_id = ?`),
		p.ClientID, p.Name, p.IsBillable, p.HourlyRate, p.Status, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	p.ID = id
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageProjects) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	return s.deleteByID(c, "projects", "project_id")
}

func (s *Server) handleListTasks(c echo.Context) error {
	rows, err := s.db.Query("SELECT task_id, project_id, name, status FROM tasks ORDER BY task_id")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Status); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		tasks = append(tasks, t)
	}
	return c.JSON(http.StatusOK, itemsResponse{Items: tasks})
}

func (s *Server) handleCreateTask(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageProjects) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	var t model.Task
	if err := c.Bind(&t); err != nil || t.Name == "" || t.ProjectID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if t.Status == "" {
		t.Status = "ACTIVE"
	}
	id, err := s.insertID(`
		INSERT INTO tasks (project_id, name, status) VALUES (?, ?, ?)`,
		"task_id",
		t.ProjectID, t.Name, t.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	t.ID = id
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageProjects) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	return s.deleteByID(c, "tasks", "task_id")
}

func (s *Server) handleListClients(c echo.Context) error {
	rows, err := s.db.Query("SELECT client_id, name, contact_email, status FROM clients ORDER BY client_id")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var cl model.Client
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.ContactEmail, &cl.Status); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		clients = append(clients, cl)
	}
	return c.JSON(http.StatusOK, itemsResponse{Items: clients})
}

func (s *Server) handleCreateClient(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageClients) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	var cl model.Client
	if err := c.Bind(&cl); err != nil || cl.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if cl.Status == "" {
		cl.Status = "ACTIVE"
	}
	id, err := s.insertID(`
		INSERT INTO clients (name, contact_email, status) VALUES (?, ?, ?)`,
		"client_id",
		cl.Name, cl.ContactEmail, cl.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	cl.ID = id
	return c.JSON(http.StatusCreated, cl)
}

func (s *Server) handleDeleteClient(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageClients) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "manager role required"})
	}
	return s.deleteByID(c, "clients", "client_id")
}

// userRequest carries the optional password alongside the account
// fields; the client's user payloads omit it.
type userRequest struct {
	model.User
	Password string `json:"password,omitempty"`
}

func (s *Server) handleListUsers(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermViewAllUsers) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
	}
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY user_id")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		users = append(users, u)
	}
	return c.JSON(http.StatusOK, itemsResponse{Items: users})
}

func (s *Server) handleCreateUser(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageUsers) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
	}
	var req userRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Role == "" {
		req.Role = model.RoleEmployee
	}

	// An account created without a password cannot log in until an
	// admin sets one.
	hash := ""
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		hash = string(h)
	}

	id, err := s.insertID(`
		INSERT INTO users (email, password_hash, first_name, last_name, role, manager_id, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"user_id",
		req.Email, hash, req.FirstName, req.LastName, req.Role, req.ManagerID, 1)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "unique") {
			return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	user, err := s.getUser(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageUsers) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	res, err := s.db.Exec(s.bind(`
		UPDATE users SET email = ?, first_name = ?, last_name = ?, role = ?, manager_id = ?, is_active = ?
		WHERE user_id = ?`),
		req.Email, req.FirstName, req.LastName, req.Role, req.ManagerID, req.IsActive, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		if _, err := s.db.Exec(s.bind("UPDATE users SET password_hash = ? WHERE user_id = ?"), string(h), id); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}

	user, err := s.getUser(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	if !currentUser(c).HasPermission(model.PermManageUsers) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
	}
	return s.deleteByID(c, "users", "user_id")
}

func (s *Server) deleteByID(c echo.Context, table, idColumn string) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	res, err := s.db.Exec(s.bind("DELETE FROM "+table+" WHERE "+idColumn+" = ?"), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
