package model

import "strings"

// Approval states for a submitted time entry
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// TimeEntry is one logged block of hours against a project/task on a
// calendar day, as stored by the ORDS backend.
type TimeEntry struct {
	ID              int64    `json:"time_entry_id"`
	UserID          int64    `json:"user_id"`
	ProjectID       int64    `json:"project_id"`
	TaskID          *int64   `json:"task_id,omitempty"`
	EntryDate       string   `json:"entry_date"` // midnight-anchored timestamp, YYYY-MM-DDT00:00:00Z
	Hours           float64  `json:"hours"`
	IsBillable      int      `json:"is_billable"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Status          string   `json:"status,omitempty"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	CreatedBy       int64    `json:"created_by"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// Day returns the calendar-day part (YYYY-MM-DD) of the entry date.
func (e *TimeEntry) Day() string {
	d, _, _ := strings.Cut(e.EntryDate, "T")
	return d
}

// Billable reports whether the entry's hours are chargeable to the client.
func (e *TimeEntry) Billable() bool {
	return e.IsBillable == 1
}

// Approved reports whether a manager has approved the entry.
func (e *TimeEntry) Approved() bool {
	return e.Status == StatusApproved
}
