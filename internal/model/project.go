package model

// Project is a billable unit of work under a client.
type Project struct {
	ID         int64    `json:"project_id"`
	ClientID   int64    `json:"client_id"`
	Name       string   `json:"name"`
	IsBillable int      `json:"is_billable"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// Billable reports whether entries on this project default to billable.
func (p *Project) Billable() bool {
	return p.IsBillable == 1
}

// Task is a unit of work under a project. Entries may optionally
// reference one; a task's parent project must match the entry's.
type Task struct {
	ID        int64  `json:"task_id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
}

// Client is the customer a project is billed to.
type Client struct {
	ID           int64  `json:"client_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	Status       string `json:"status,omitempty"`
}
