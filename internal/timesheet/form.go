package timesheet

import (
	"strconv"
	"strings"

	"github.com/oan-pulse/pulse/internal/model"
)

// Payload is the server-ready time-entry body. Optional fields are
// omitted entirely when absent, never sent as null.
type Payload struct {
	UserID     int64    `json:"user_id"`
	ProjectID  int64    `json:"project_id"`
	TaskID     *int64   `json:"task_id,omitempty"`
	EntryDate  string   `json:"entry_date"`
	Hours      float64  `json:"hours"`
	IsBillable int      `json:"is_billable"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	CreatedBy  int64    `json:"created_by"`
}

// ValidationResult is either Ok (a buildable payload) or Invalid (a set
// of field errors keyed by field name). One shape for every form.
type ValidationResult struct {
	Payload     Payload
	FieldErrors map[string]string
}

// OK reports whether the draft validated.
func (r ValidationResult) OK() bool {
	return len(r.FieldErrors) == 0
}

// BuildContext carries the submission-time facts the draft itself does
// not hold: who the entry is for, who is creating it, the pivot day it
// lands on, and the timer's elapsed seconds when in timer mode.
type BuildContext struct {
	UserID       int64
	CreatedBy    int64
	Day          string // YYYY-MM-DD
	TimerSeconds int64  // > 0 replaces the draft's hours field
}

// FormController manages the add/edit/duplicate draft and produces
// normalized payloads against the project/task catalog.
type FormController struct {
	projects []model.Project
	tasks    []model.Task

	ProjectID  int64
	TaskID     int64 // 0 = none
	Notes      string
	Hours      string // raw input, coerced at build time
	HourlyRate string
}

// NewFormController returns a controller over the given catalog.
func NewFormController(projects []model.Project, tasks []model.Task) *FormController {
	return &FormController{projects: projects, tasks: tasks}
}

// SetProject selects a project and always clears any task selection;
// a stale task must never survive a project switch.
func (f *FormController) SetProject(id int64) {
	if f.ProjectID != id {
		f.TaskID = 0
	}
	f.ProjectID = id
}

// Tasks returns the catalog tasks belonging to the selected project.
func (f *FormController) Tasks() []model.Task {
	if f.ProjectID == 0 {
		return nil
	}
	var out []model.Task
	for _, t := range f.tasks {
		if t.ProjectID == f.ProjectID {
			out = append(out, t)
		}
	}
	return out
}

// Project looks up the selected project, nil when not found.
func (f *FormController) Project() *model.Project {
	for i := range f.projects {
		if f.projects[i].ID == f.ProjectID {
			return &f.projects[i]
		}
	}
	return nil
}

// Reset clears the draft fields.
func (f *FormController) Reset() {
	f.ProjectID = 0
	f.TaskID = 0
	f.Notes = ""
	f.Hours = ""
	f.HourlyRate = ""
}

// BuildPayload validates the draft and produces the server payload.
// A project and positive hours (or timer-derived hours) are required.
// The billable flag is derived from the selected project, defaulting to
// non-billable when the lookup fails; it is never user-entered here.
func (f *FormController) BuildPayload(ctx BuildContext) ValidationResult {
	errs := make(map[string]string)

	if f.ProjectID == 0 {
		errs["project_id"] = "Project is required"
	}

	var hours float64
	if ctx.TimerSeconds > 0 {
		hours = HoursFromSeconds(ctx.TimerSeconds)
	} else {
		h, err := strconv.ParseFloat(strings.TrimSpace(f.Hours), 64)
		if err != nil || h <= 0 {
			errs["hours"] = "Valid hours are required"
		}
		hours = Round2(h)
	}

	if f.TaskID != 0 {
		if task := f.findTask(f.TaskID); task == nil || task.ProjectID != f.ProjectID {
			errs["task_id"] = "Task does not belong to the selected project"
		}
	}

	if len(errs) > 0 {
		return ValidationResult{FieldErrors: errs}
	}

	billable := 0
	if p := f.Project(); p != nil {
		billable = p.IsBillable
	}

	p := Payload{
		UserID:     ctx.UserID,
		ProjectID:  f.ProjectID,
		EntryDate:  ctx.Day + "T00:00:00Z",
		Hours:      hours,
		IsBillable: billable,
		CreatedBy:  ctx.CreatedBy,
	}
	if f.TaskID != 0 {
		id := f.TaskID
		p.TaskID = &id
	}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		p.Notes = notes
	}
	if rate := strings.TrimSpace(f.HourlyRate); rate != "" {
		if v, err := strconv.ParseFloat(rate, 64); err == nil {
			p.HourlyRate = &v
		}
	}
	return ValidationResult{Payload: p}
}

func (f *FormController) findTask(id int64) *model.Task {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i]
		}
	}
	return nil
}

// DuplicatePayload copies an existing entry's project, task, hours and
// project-inherited billable flag into a create payload dated at the
// currently viewed day, with a " (copy)" marker appended to the notes.
// Duplication relocates the entry to the day in view, not the original
// entry's day.
func DuplicatePayload(src model.TimeEntry, projects []model.Project, ctx BuildContext) Payload {
	billable := 0
	for _, p := range projects {
		if p.ID == src.ProjectID {
			billable = p.IsBillable
			break
		}
	}

	p := Payload{
		UserID:     ctx.UserID,
		ProjectID:  src.ProjectID,
		EntryDate:  ctx.Day + "T00:00:00Z",
		Hours:      Round2(src.Hours),
		IsBillable: billable,
		Notes:      strings.TrimSpace(src.Notes + " (copy)"),
		CreatedBy:  ctx.CreatedBy,
	}
	if src.TaskID != nil {
		id := *src.TaskID
		p.TaskID = &id
	}
	return p
}
