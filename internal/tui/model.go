package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/oan-pulse/pulse/internal/api"
	"github.com/oan-pulse/pulse/internal/config"
	"github.com/oan-pulse/pulse/internal/logger"
	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/session"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

// View is the active screen
type View int

const (
	ViewWeek View = iota
	ViewForm
	ViewTimer
	ViewReports
	ViewHelp
)

// formField identifies the focused field of the entry form
type formField int

const (
	fieldProject formField = iota
	fieldTask
	fieldHours
	fieldNotes
	fieldRate
	fieldCount
)

// Model is the main TUI model
type Model struct {
	client *api.Client
	sess   *session.Session
	cfg    *config.Config

	width  int
	height int
	view   View

	// Week board state
	pivot       time.Time
	week        [7]time.Time
	store       *timesheet.WeekStore
	buckets     map[string][]model.TimeEntry
	dayCursor   int
	entryCursor int
	loading     bool

	// Catalog
	projects []model.Project
	tasks    []model.Task

	// Entry form
	form       *timesheet.FormController
	editingID  int64 // 0 = creating
	focus      formField
	projCursor int
	taskCursor int
	hoursInput textinput.Model
	notesInput textinput.Model
	rateInput  textinput.Model
	fieldErrs  map[string]string

	// Delete confirmation
	pendingDelete int64

	// Timer
	timer *timesheet.Timer
	// Seconds captured from a finished timer run, consumed by the form
	// in place of a typed hours value.
	pendingTimerSeconds int64

	// Reports
	reports reportsState

	message string
}

// NewModel creates a new TUI model
func NewModel(client *api.Client, sess *session.Session, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	hours := textinput.New()
	hours.Placeholder = "2.5"
	hours.CharLimit = 8
	hours.Width = 10

	notes := textinput.New()
	notes.Placeholder = "What did you work on?"
	notes.CharLimit = 256
	notes.Width = 40

	rate := textinput.New()
	rate.Placeholder = "(project default)"
	rate.CharLimit = 10
	rate.Width = 16

	pivot := time.Now()
	m := Model{
		client:     client,
		sess:       sess,
		cfg:        cfg,
		pivot:      pivot,
		week:       timesheet.WeekDates(pivot),
		store:      timesheet.NewWeekStore(),
		buckets:    map[string][]model.TimeEntry{},
		timer:      timesheet.NewTimer(),
		hoursInput: hours,
		notesInput: notes,
		rateInput:  rate,
		loading:    true,
	}

	// Start on today's column.
	today := timesheet.DayKey(pivot)
	for i, day := range m.week {
		if timesheet.DayKey(day) == today {
			m.dayCursor = i
		}
	}

	return m
}

// setWeek repositions the board around a pivot date.
func (m *Model) setWeek(pivot time.Time) {
	m.pivot = pivot
	m.week = timesheet.WeekDates(pivot)
	m.entryCursor = 0
	m.loading = true
}

func (m *Model) dayKey() string {
	return timesheet.DayKey(m.week[m.dayCursor])
}

func (m *Model) dayEntries() []model.TimeEntry {
	return m.buckets[m.dayKey()]
}

func (m *Model) currentEntry() *model.TimeEntry {
	entries := m.dayEntries()
	if m.entryCursor < len(entries) {
		return &entries[m.entryCursor]
	}
	return nil
}

func (m *Model) clampEntryCursor() {
	if n := len(m.dayEntries()); m.entryCursor >= n {
		m.entryCursor = 0
	}
}

func (m *Model) projectName(id int64) string {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (m *Model) taskName(id int64) string {
	for _, t := range m.tasks {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}
