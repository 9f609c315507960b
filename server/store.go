package server

import (
	"database/sql"

	"github.com/oan-pulse/pulse/internal/model"
)

// Row scanning helpers shared by the handlers.

const userColumns = "user_id, email, first_name, last_name, role, manager_id, is_active"

func scanUser(row interface{ Scan(...interface{}) error }) (model.User, error) {
	var u model.User
	var managerID sql.NullInt64
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &managerID, &u.IsActive)
	if managerID.Valid {
		u.ManagerID = &managerID.Int64
	}
	return u, err
}

func (s *Server) getUser(id int64) (model.User, error) {
	row := s.db.QueryRow(s.bind("SELECT "+userColumns+" FROM users WHERE user_id = ?"), id)
	return scanUser(row)
}

const entryColumns = `time_entry_id, user_id, project_id, task_id, entry_date, hours,
	is_billable, hourly_rate, notes, status, rejection_reason, created_by, created_at`

func scanEntry(row interface{ Scan(...interface{}) error }) (model.TimeEntry, error) {
	var e model.TimeEntry
	var taskID sql.NullInt64
	var rate sql.NullFloat64
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &taskID, &e.EntryDate, &e.Hours,
		&e.IsBillable, &rate, &e.Notes, &e.Status, &e.RejectionReason, &e.CreatedBy, &e.CreatedAt)
	if taskID.Valid {
		e.TaskID = &taskID.Int64
	}
	if rate.Valid {
		e.HourlyRate = &rate.Float64
	}
	return e, err
}

func (s *Server) getEntry(id int64) (model.TimeEntry, error) {
	row := s.db.QueryRow(s.bind("SELECT "+entryColumns+" FROM time_entries WHERE time_entry_id = ?"), id)
	return scanEntry(row)
}

func collectEntries(rows *sql.Rows) ([]model.TimeEntry, error) {
	defer rows.Close()
	entries := []model.TimeEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanProject(row interface{ Scan(...interface{}) error }) (model.Project, error) {
	var p model.Project
	var rate sql.NullFloat64
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.IsBillable, &rate, &p.Status)
	if rate.Valid {
		p.HourlyRate = &rate.Float64
	}
	return p, err
}
