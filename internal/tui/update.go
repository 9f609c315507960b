package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oan-pulse/pulse/internal/logger"
	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

// tickMsg drives the live timer display
type tickMsg time.Time

// weekLoadedMsg carries a finished week refresh. Superseded refreshes
// arrive with ok=false and are dropped.
type weekLoadedMsg struct {
	buckets map[string][]model.TimeEntry
	ok      bool
}

type catalogMsg struct {
	projects []model.Project
	tasks    []model.Task
	err      error
}

type savedMsg struct {
	entry model.TimeEntry
	err   error
}

type deletedMsg struct {
	id  int64
	err error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.refreshWeek())
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshWeek fetches the seven day buckets off the UI goroutine. The
// store discards results from refreshes that a newer one overtook.
func (m Model) refreshWeek() tea.Cmd {
	store := m.store
	week := m.week
	fetch := m.client.EntriesForDay(m.sess.User().ID)
	return func() tea.Msg {
		buckets, ok := store.Refresh(context.Background(), week, fetch)
		return weekLoadedMsg{buckets: buckets, ok: ok}
	}
}

func (m Model) loadCatalog() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		projects, err := client.ListProjects(ctx)
		if err != nil {
			return catalogMsg{err: err}
		}
		tasks, err := client.ListTasks(ctx)
		if err != nil {
			return catalogMsg{err: err}
		}
		return catalogMsg{projects: projects, tasks: tasks}
	}
}

func (m Model) saveEntry(payload timesheet.Payload, editingID int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if editingID != 0 {
			entry, err := client.UpdateTimeEntry(ctx, editingID, payload)
			return savedMsg{entry: entry, err: err}
		}
		entry, err := client.CreateTimeEntry(ctx, payload)
		return savedMsg{entry: entry, err: err}
	}
}

func (m Model) deleteEntry(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return deletedMsg{id: id, err: client.DeleteTimeEntry(context.Background(), id)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.timer.Running() {
			return m, tickCmd()
		}
		return m, nil

	case weekLoadedMsg:
		if !msg.ok {
			logger.Debug("Dropping superseded week refresh")
			return m, nil
		}
		m.buckets = msg.buckets
		m.loading = false
		m.clampEntryCursor()
		if m.view == ViewReports {
			m.buildReportChart()
		}
		return m, nil

	case catalogMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Failed to load projects: %v", msg.err)
			return m, nil
		}
		m.projects = msg.projects
		m.tasks = msg.tasks
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Save failed: %v", msg.err)
			return m, nil
		}
		m.message = fmt.Sprintf("Saved %.2fh on %s", msg.entry.Hours, msg.entry.Day())
		m.view = ViewWeek
		m.loading = true
		return m, m.refreshWeek()

	case deletedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.message = fmt.Sprintf("Deleted entry #%d", msg.id)
		m.loading = true
		return m, m.refreshWeek()

	case tea.KeyMsg:
		switch m.view {
		case ViewForm:
			return m.updateForm(msg)
		case ViewTimer:
			return m.updateTimer(msg)
		case ViewReports:
			return m.updateReports(msg)
		case ViewHelp:
			m.view = ViewWeek
			return m, nil
		}
		return m.updateWeek(msg)
	}

	return m, nil
}

// updateWeek handles keys on the week board
func (m Model) updateWeek(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete only listens for confirmation.
	if m.pendingDelete != 0 {
		switch msg.String() {
		case "y", "Y", "enter":
			id := m.pendingDelete
			m.pendingDelete = 0
			return m, m.deleteEntry(id)
		default:
			m.pendingDelete = 0
			m.message = "Delete cancelled"
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		if m.dayCursor > 0 {
			m.dayCursor--
			m.clampEntryCursor()
		}

	case key.Matches(msg, keys.Right):
		if m.dayCursor < 6 {
			m.dayCursor++
			m.clampEntryCursor()
		}

	case key.Matches(msg, keys.Up):
		if m.entryCursor > 0 {
			m.entryCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.entryCursor+1 < len(m.dayEntries()) {
			m.entryCursor++
		}

	case key.Matches(msg, keys.PrevWeek):
		m.setWeek(m.pivot.AddDate(0, 0, -7))
		return m, m.refreshWeek()

	case key.Matches(msg, keys.NextWeek):
		m.setWeek(m.pivot.AddDate(0, 0, 7))
		return m, m.refreshWeek()

	case key.Matches(msg, keys.Today):
		m.setWeek(time.Now())
		today := timesheet.DayKey(time.Now())
		for i, day := range m.week {
			if timesheet.DayKey(day) == today {
				m.dayCursor = i
			}
		}
		return m, m.refreshWeek()

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.refreshWeek()

	case key.Matches(msg, keys.Add):
		m.openForm(nil)

	case key.Matches(msg, keys.Edit):
		if entry := m.currentEntry(); entry != nil {
			m.openForm(entry)
		}

	case key.Matches(msg, keys.Delete):
		if entry := m.currentEntry(); entry != nil {
			if m.cfg.ConfirmDelete {
				m.pendingDelete = entry.ID
			} else {
				return m, m.deleteEntry(entry.ID)
			}
		}

	case key.Matches(msg, keys.Duplicate):
		if entry := m.currentEntry(); entry != nil {
			user := m.sess.User()
			payload := timesheet.DuplicatePayload(*entry, m.projects, timesheet.BuildContext{
				UserID:    user.ID,
				CreatedBy: user.ID,
				Day:       m.dayKey(),
			})
			return m, m.saveEntry(payload, 0)
		}

	case key.Matches(msg, keys.Timer):
		m.view = ViewTimer

	case key.Matches(msg, keys.Reports):
		m.view = ViewReports
		m.buildReportChart()

	case key.Matches(msg, keys.Help):
		m.view = ViewHelp
	}

	return m, nil
}

// openForm prepares the entry form, blank for a new entry or seeded
// from an existing one.
func (m *Model) openForm(entry *model.TimeEntry) {
	m.form = timesheet.NewFormController(m.projects, m.tasks)
	m.fieldErrs = nil
	m.focus = fieldProject
	m.projCursor = 0
	m.taskCursor = 0
	m.editingID = 0
	m.pendingTimerSeconds = 0

	m.hoursInput.SetValue("")
	m.notesInput.SetValue("")
	m.rateInput.SetValue("")

	if entry != nil {
		m.editingID = entry.ID
		m.form.SetProject(entry.ProjectID)
		for i, p := range m.projects {
			if p.ID == entry.ProjectID {
				m.projCursor = i
			}
		}
		if entry.TaskID != nil {
			m.form.TaskID = *entry.TaskID
			for i, t := range m.form.Tasks() {
				if t.ID == *entry.TaskID {
					m.taskCursor = i + 1 // slot 0 is "(none)"
				}
			}
		}
		m.hoursInput.SetValue(strconv.FormatFloat(entry.Hours, 'f', -1, 64))
		m.notesInput.SetValue(entry.Notes)
		if entry.HourlyRate != nil {
			m.rateInput.SetValue(strconv.FormatFloat(*entry.HourlyRate, 'f', -1, 64))
		}
	} else if len(m.projects) > 0 {
		m.form.SetProject(m.projects[m.projCursor].ID)
	}

	m.view = ViewForm
}

// updateForm handles keys in the entry form
func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.view = ViewWeek
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.Enter):
		return m.submitForm()
	}

	switch m.focus {
	case fieldProject:
		switch {
		case key.Matches(msg, keys.Up):
			if m.projCursor > 0 {
				m.projCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.projCursor+1 < len(m.projects) {
				m.projCursor++
			}
		}
		if len(m.projects) > 0 {
			// Switching projects drops any selected task.
			before := m.form.TaskID
			m.form.SetProject(m.projects[m.projCursor].ID)
			if m.form.TaskID != before {
				m.taskCursor = 0
			}
		}
		return m, nil

	case fieldTask:
		available := m.form.Tasks()
		switch {
		case key.Matches(msg, keys.Up):
			if m.taskCursor > 0 {
				m.taskCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.taskCursor < len(available) {
				m.taskCursor++
			}
		}
		if m.taskCursor == 0 {
			m.form.TaskID = 0
		} else {
			m.form.TaskID = available[m.taskCursor-1].ID
		}
		return m, nil

	case fieldHours:
		var cmd tea.Cmd
		m.hoursInput, cmd = m.hoursInput.Update(msg)
		return m, cmd

	case fieldNotes:
		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		return m, cmd

	case fieldRate:
		var cmd tea.Cmd
		m.rateInput, cmd = m.rateInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) setFocus(f formField) {
	m.focus = f
	m.hoursInput.Blur()
	m.notesInput.Blur()
	m.rateInput.Blur()
	switch f {
	case fieldHours:
		m.hoursInput.Focus()
	case fieldNotes:
		m.notesInput.Focus()
	case fieldRate:
		m.rateInput.Focus()
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.form.Hours = m.hoursInput.Value()
	m.form.Notes = m.notesInput.Value()
	m.form.HourlyRate = m.rateInput.Value()

	user := m.sess.User()
	result := m.form.BuildPayload(timesheet.BuildContext{
		UserID:       user.ID,
		CreatedBy:    user.ID,
		Day:          m.dayKey(),
		TimerSeconds: m.pendingTimerSeconds,
	})
	if !result.OK() {
		m.fieldErrs = result.FieldErrors
		return m, nil
	}
	m.fieldErrs = nil
	m.pendingTimerSeconds = 0
	return m, m.saveEntry(result.Payload, m.editingID)
}

// updateTimer handles keys on the timer screen
func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", " ":
		if m.timer.Running() {
			m.timer.Pause()
			return m, nil
		}
		m.timer.Start()
		return m, tickCmd()

	case "x":
		m.timer.Reset()
		return m, nil

	case "enter":
		seconds := m.timer.Stop()
		if seconds == 0 {
			m.message = "Timer at zero, nothing to log"
			m.view = ViewWeek
			return m, nil
		}
		m.openForm(nil)
		// The captured duration wins over anything typed into the
		// hours field; the prefill is display only.
		m.pendingTimerSeconds = seconds
		m.hoursInput.SetValue(strconv.FormatFloat(timesheet.HoursFromSeconds(seconds), 'f', 2, 64))
		return m, nil

	case "esc", "q":
		m.view = ViewWeek
		return m, nil
	}
	return m, nil
}
