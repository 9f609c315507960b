package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

type itemsResponse struct {
	Items interface{} `json:"items"`
}

// parseEntryQuery translates the ORDS-style q parameter into a WHERE
// clause. Supported shapes: {"entry_date":{"$gte":...,"$lte":...}} and
// single-column equality like {"user_id":5}. Dates are ISO text, so
// range bounds reduce to string comparison.
func parseEntryQuery(raw string) (string, []interface{}) {
	if raw == "" {
		return "", nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", nil
	}

	where := ""
	var args []interface{}
	and := func(clause string, vals ...interface{}) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
		args = append(args, vals...)
	}

	for col, val := range doc {
		switch col {
		case "entry_date":
			var bounds map[string]string
			if err := json.Unmarshal(val, &bounds); err != nil {
				continue
			}
			if gte, ok := bounds["$gte"]; ok {
				and("entry_date >= ?", gte)
			}
			if lte, ok := bounds["$lte"]; ok {
				and("entry_date <= ?", lte)
			}
		case "user_id", "project_id", "task_id", "status":
			var v interface{}
			if err := json.Unmarshal(val, &v); err != nil {
				continue
			}
			and(col+" = ?", v)
		}
	}
	return where, args
}

func (s *Server) handleListTimeEntries(c echo.Context) error {
	where, args := parseEntryQuery(c.QueryParam("q"))

	rows, err := s.db.Query(s.bind("SELECT "+entryColumns+" FROM time_entries"+where+" ORDER BY time_entry_id"), args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, itemsResponse{Items: entries})
}

func (s *Server) handleGetTimeEntry(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	entry, err := s.getEntry(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleCreateTimeEntry(c echo.Context) error {
	var p timesheet.Payload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if p.ProjectID == 0 || p.EntryDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "project_id and entry_date required"})
	}
	if p.UserID == 0 {
		p.UserID = currentUser(c).ID
	}
	if p.CreatedBy == 0 {
		p.CreatedBy = currentUser(c).ID
	}

	id, err := s.insertID(`
		INSERT INTO time_entries (user_id, project_id, task_id, entry_date, hours,
			is_billable, hourly_rate, notes, status, rejection_reason, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"time_entry_id",
		p.UserID, p.ProjectID, p.TaskID, p.EntryDate, p.Hours,
		p.IsBillable, p.HourlyRate, p.Notes, model.StatusPending, "", p.CreatedBy,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	entry, err := s.getEntry(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, entry)
}

// handleUpdateTimeEntry replaces an entry's editable fields. Editing
// resets the approval status back to PENDING.
func (s *Server) handleUpdateTimeEntry(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var p timesheet.Payload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	res, err := s.db.Exec(s.bind(`
		UPDATE time_entries
		SET project_id = ?, task_id = ?, entry_date = ?, hours = ?,
			is_billable = ?, hourly_rate = ?, notes = ?, status = ?, rejection_reason = ''
		WHERE time_entry_id = ?`),
		p.ProjectID, p.TaskID, p.EntryDate, p.Hours,
		p.IsBillable, p.HourlyRate, p.Notes, model.StatusPending, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	entry, err := s.getEntry(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *Server) handleDeleteTimeEntry(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	res, err := s.db.Exec(s.bind("DELETE FROM time_entries WHERE time_entry_id = ?"), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
