package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/oan-pulse/pulse/internal/model"
)

// teamScope returns a clause restricting time_entries rows to the
// caller's reports. Admins see everyone.
func teamScope(user *model.User) (string, []interface{}) {
	if user.IsAdmin() {
		return "1 = 1", nil
	}
	return "user_id IN (SELECT user_id FROM users WHERE manager_id = ?)", []interface{}{user.ID}
}

func (s *Server) handleTeam(c echo.Context) error {
	user := currentUser(c)

	query := "SELECT " + userColumns + " FROM users WHERE manager_id = ? ORDER BY user_id"
	args := []interface{}{user.ID}
	if user.IsAdmin() {
		query = "SELECT " + userColumns + " FROM users WHERE user_id != ? ORDER BY user_id"
	}

	rows, err := s.db.Query(s.bind(query), args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	members := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		members = append(members, u)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"team_members": members})
}

func (s *Server) handlePendingApprovals(c echo.Context) error {
	scope, args := teamScope(currentUser(c))

	rows, err := s.db.Query(s.bind(
		"SELECT "+entryColumns+" FROM time_entries WHERE "+scope+" AND status = ? ORDER BY entry_date"),
		append(args, model.StatusPending)...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"pending_approvals": entries})
}

func (s *Server) handleTeamTimeEntries(c echo.Context) error {
	scope, args := teamScope(currentUser(c))
	query := "SELECT " + entryColumns + " FROM time_entries WHERE " + scope

	if start := c.QueryParam("start_date"); start != "" {
		query += " AND entry_date >= ?"
		args = append(args, start)
	}
	if end := c.QueryParam("end_date"); end != "" {
		query += " AND entry_date <= ?"
		args = append(args, end+"T23:59:59")
	}
	if status := c.QueryParam("status"); status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY entry_date"

	rows, err := s.db.Query(s.bind(query), args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"time_entries": entries})
}

func (s *Server) handleApprove(c echo.Context) error {
	return s.review(c, model.StatusApproved, "")
}

func (s *Server) handleReject(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	return s.review(c, model.StatusRejected, req.Reason)
}

// review transitions an entry's approval status, scoped to the
// caller's team.
func (s *Server) review(c echo.Context, status, reason string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	scope, args := teamScope(currentUser(c))
	args = append([]interface{}{status, reason}, args...)
	args = append(args, id)

	res, err := s.db.Exec(s.bind(
		"UPDATE time_entries SET status = ?, rejection_reason = ? WHERE "+scope+" AND time_entry_id = ?"),
		args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleStats(c echo.Context) error {
	user := currentUser(c)
	scope, args := teamScope(user)
	query := "SELECT status, hours, is_billable FROM time_entries WHERE " + scope

	if start := c.QueryParam("start_date"); start != "" {
		query += " AND entry_date >= ?"
		args = append(args, start)
	}
	if end := c.QueryParam("end_date"); end != "" {
		query += " AND entry_date <= ?"
		args = append(args, end+"T23:59:59")
	}

	rows, err := s.db.Query(s.bind(query), args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	stats := struct {
		TotalHours    float64 `json:"total_hours"`
		BillableHours float64 `json:"billable_hours"`
		PendingCount  int     `json:"pending_count"`
		ApprovedCount int     `json:"approved_count"`
		RejectedCount int     `json:"rejected_count"`
		MemberCount   int     `json:"member_count"`
	}{}

	for rows.Next() {
		var status string
		var hours float64
		var billable int
		if err := rows.Scan(&status, &hours, &billable); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		stats.TotalHours += hours
		if billable == 1 {
			stats.BillableHours += hours
		}
		switch status {
		case model.StatusPending:
			stats.PendingCount++
		case model.StatusApproved:
			stats.ApprovedCount++
		case model.StatusRejected:
			stats.RejectedCount++
		}
	}
	if err := rows.Err(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	memberQuery := "SELECT COUNT(*) FROM users WHERE manager_id = ?"
	memberArgs := []interface{}{user.ID}
	if user.IsAdmin() {
		memberQuery = "SELECT COUNT(*) FROM users WHERE user_id != ?"
	}
	if err := s.db.QueryRow(s.bind(memberQuery), memberArgs...).Scan(&stats.MemberCount); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, stats)
}
