package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case ViewForm:
		modal := m.renderForm()
		content := lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
		return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())

	case ViewTimer:
		content := lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderTimer(),
			lipgloss.WithWhitespaceChars(" "),
		)
		return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())

	case ViewReports:
		return m.viewReports()

	case ViewHelp:
		return m.renderHelp()
	}

	board := m.renderWeekBoard()
	entries := m.renderDayEntries()
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, board, entries, statusBar)
}

func (m Model) renderWeekBoard() string {
	user := m.sess.User()
	title := fmt.Sprintf("Pulse  %s — %s", m.week[0].Format("Jan 02"), m.week[6].Format("Jan 02, 2006"))
	header := HeaderStyle.Render(title) + "  " + HelpStyle.Render(user.FullName())
	if m.loading {
		header += "  " + HelpStyle.Render("refreshing...")
	}

	cardWidth := (m.width-2)/7 - 2
	if cardWidth < 10 {
		cardWidth = 10
	}
	barWidth := cardWidth - 2
	today := timesheet.DayKey(time.Now())

	cards := make([]string, 0, 7)
	for i, day := range m.week {
		key := timesheet.DayKey(day)
		total := timesheet.DayTotal(m.buckets, key)
		split := timesheet.SplitHours(total, timesheet.DailyTarget)

		marker := "  "
		if key == today {
			marker = "▸ "
		}

		label := marker + day.Format("Mon 02")
		totalLine := fmt.Sprintf("%.2fh", total)
		if split.IsOvertime() {
			totalLine += OvertimeBarStyle.Render(" +" + fmt.Sprintf("%.2f", split.Overtime))
		}
		countLine := HelpStyle.Render(fmt.Sprintf("%d entries", len(m.buckets[key])))

		body := lipgloss.JoinVertical(lipgloss.Left,
			label,
			totalLine,
			hoursBar(split.Regular, split.Overtime, timesheet.DailyTarget, barWidth),
			countLine,
		)

		style := DayCardStyle
		if i == m.dayCursor {
			style = DayCardSelectedStyle
		}
		cards = append(cards, style.Width(cardWidth).Render(body))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	footer := HelpStyle.Render(fmt.Sprintf("  Week total: %.2fh", timesheet.WeekTotal(m.buckets, m.week)))

	return lipgloss.JoinVertical(lipgloss.Left, header, board, footer)
}

func (m Model) renderDayEntries() string {
	day := m.week[m.dayCursor]
	entries := m.dayEntries()

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(day.Format("Monday, Jan 02")) + "\n")

	if len(entries) == 0 {
		s.WriteString(HelpStyle.Render("  No entries. Press 'a' to add one."))
		return s.String()
	}

	notesWidth := m.width - 50
	if notesWidth < 10 {
		notesWidth = 10
	}

	for i, e := range entries {
		cursor := "  "
		style := EntryItemStyle
		if i == m.entryCursor {
			cursor = "❯ "
			style = EntryItemSelectedStyle
		}

		name := m.projectName(e.ProjectID)
		if e.TaskID != nil {
			if task := m.taskName(*e.TaskID); task != "" {
				name += " / " + task
			}
		}

		line := fmt.Sprintf("%s%s %6.2fh  %-24s %s",
			cursor, StatusIcon(e.Status), e.Hours, truncate(name, 24), truncate(e.Notes, notesWidth))
		s.WriteString(style.Render(line) + "\n")

		if e.Status == model.StatusRejected && e.RejectionReason != "" {
			s.WriteString(ErrorStyle.Render("      ↳ "+truncate(e.RejectionReason, m.width-10)) + "\n")
		}
	}

	return s.String()
}

func (m Model) renderStatusBar() string {
	help := "a:add  e:edit  d:del  y:dup  t:timer  R:reports  [/]:week  ?:help  q:quit"
	if m.pendingDelete != 0 {
		help = ErrorStyle.Render(fmt.Sprintf("Delete entry #%d? y:confirm  any other key:cancel", m.pendingDelete))
	} else if m.message != "" {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderForm() string {
	title := "Add Entry"
	if m.editingID != 0 {
		title = fmt.Sprintf("Edit Entry #%d", m.editingID)
	}
	title += "  " + HelpStyle.Render(m.week[m.dayCursor].Format("Mon, Jan 02"))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	b.WriteString(m.renderChoiceField("Project", fieldProject, m.projectChoice()))
	b.WriteString(m.renderChoiceField("Task", fieldTask, m.taskChoice()))
	b.WriteString(m.renderInputField("Hours", fieldHours, m.hoursInput.View(), "hours"))
	b.WriteString(m.renderInputField("Notes", fieldNotes, m.notesInput.View(), ""))
	b.WriteString(m.renderInputField("Rate", fieldRate, m.rateInput.View(), ""))

	if m.pendingTimerSeconds > 0 {
		b.WriteString("\n" + HelpStyle.Render(fmt.Sprintf("  From timer: %s", timesheet.FormatClock(m.pendingTimerSeconds))) + "\n")
	}
	if msg, ok := m.fieldErrs["project_id"]; ok {
		b.WriteString(ErrorStyle.Render("  "+msg) + "\n")
	}
	if msg, ok := m.fieldErrs["task_id"]; ok {
		b.WriteString(ErrorStyle.Render("  "+msg) + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("Tab:next field  ↑↓:choose  Enter:save  Esc:cancel"))

	return ModalStyle.Width(56).Render(b.String())
}

func (m Model) projectChoice() string {
	if len(m.projects) == 0 {
		return HelpStyle.Render("(no projects)")
	}
	p := m.projects[m.projCursor]
	choice := p.Name
	if p.IsBillable == 1 {
		choice += HelpStyle.Render("  billable")
	}
	return choice
}

func (m Model) taskChoice() string {
	available := m.form.Tasks()
	if m.taskCursor == 0 || m.taskCursor > len(available) {
		return HelpStyle.Render("(none)")
	}
	return available[m.taskCursor-1].Name
}

func (m Model) renderChoiceField(label string, f formField, value string) string {
	marker := "  "
	if m.focus == f {
		marker = "❯ "
		value = "↕ " + value
	}
	return fmt.Sprintf("%s%-8s %s\n", marker, label, value)
}

func (m Model) renderInputField(label string, f formField, view, errKey string) string {
	marker := "  "
	if m.focus == f {
		marker = "❯ "
	}
	s := fmt.Sprintf("%s%-8s %s\n", marker, label, view)
	if errKey != "" {
		if msg, ok := m.fieldErrs[errKey]; ok {
			s += ErrorStyle.Render("           "+msg) + "\n"
		}
	}
	return s
}

func (m Model) renderTimer() string {
	state := HelpStyle.Render("paused")
	clockStyle := lipgloss.NewStyle().Bold(true)
	if m.timer.Running() {
		state = lipgloss.NewStyle().Foreground(TimerLive).Render("● recording")
		clockStyle = clockStyle.Foreground(TimerLive)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Timer") + "  " + state + "\n\n")
	b.WriteString(clockStyle.Render("  "+timesheet.FormatClock(m.timer.Elapsed())) + "\n\n")
	b.WriteString(HelpStyle.Render("s/space:start-pause  x:reset  Enter:log entry  Esc:back"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderHelp() string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  h/←  l/→  Change day      │
│  j/↓  k/↑  Change entry    │
│  [ ]       Change week     │
│  T         Jump to today   │
│                            │
│  Entries                   │
│  ───────                   │
│  a    Add entry            │
│  e    Edit entry           │
│  d    Delete entry         │
│  y    Duplicate entry      │
│  r    Refresh              │
│                            │
│  Screens                   │
│  ───────                   │
│  t    Timer                │
│  R    Reports              │
│  ?    This help            │
│  q    Quit                 │
│                            │
╰────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
