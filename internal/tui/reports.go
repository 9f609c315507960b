package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oan-pulse/pulse/internal/timesheet"
)

// reportsState holds the weekly hours chart rebuilt whenever the
// underlying buckets or the viewed week change.
type reportsState struct {
	chart barchart.Model
	built bool
}

// buildReportChart renders the seven day totals as stacked bars, the
// regular share up to the daily target and the overtime share above it.
func (m *Model) buildReportChart() {
	chartWidth := m.width - 10
	if chartWidth < 28 {
		chartWidth = 28
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.reports.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range m.week {
		key := timesheet.DayKey(day)
		total := timesheet.DayTotal(m.buckets, key)
		split := timesheet.SplitHours(total, timesheet.DailyTarget)

		values := []barchart.BarValue{
			{Name: "regular", Value: split.Regular, Style: RegularBarStyle},
		}
		if split.IsOvertime() {
			values = append(values, barchart.BarValue{
				Name:  "overtime",
				Value: split.Overtime,
				Style: OvertimeBarStyle,
			})
		}

		bars = append(bars, barchart.BarData{
			Label:  day.Format("Mon 02"),
			Values: values,
		})
	}

	m.reports.chart.PushAll(bars)
	m.reports.chart.Draw()
	m.reports.built = true
}

// updateReports handles keys on the reports screen
func (m Model) updateReports(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.PrevWeek):
		m.setWeek(m.pivot.AddDate(0, 0, -7))
		return m, m.refreshWeek()

	case key.Matches(msg, keys.NextWeek):
		m.setWeek(m.pivot.AddDate(0, 0, 7))
		return m, m.refreshWeek()

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, m.refreshWeek()

	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Quit), key.Matches(msg, keys.Reports):
		m.view = ViewWeek
		return m, nil
	}
	return m, nil
}

// viewReports renders the weekly chart with a per-day summary line.
func (m Model) viewReports() string {
	header := HeaderStyle.Render(fmt.Sprintf("Reports  %s — %s",
		m.week[0].Format("Jan 02"), m.week[6].Format("Jan 02, 2006")))

	chart := "  building chart..."
	if m.reports.built {
		chart = m.reports.chart.View()
	}

	legend := fmt.Sprintf("%s regular  %s overtime (>%.0fh)",
		RegularBarStyle.Render("■"), OvertimeBarStyle.Render("■"), timesheet.DailyTarget)

	var rows []string
	for _, day := range m.week {
		key := timesheet.DayKey(day)
		total := timesheet.DayTotal(m.buckets, key)
		split := timesheet.SplitHours(total, timesheet.DailyTarget)
		line := fmt.Sprintf("  %-10s %6.2fh", day.Format("Mon 02"), total)
		if split.IsOvertime() {
			line += OvertimeBarStyle.Render(fmt.Sprintf("  (%.2fh overtime)", split.Overtime))
		}
		rows = append(rows, line)
	}
	rows = append(rows, fmt.Sprintf("  %-10s %6.2fh", "Total",
		timesheet.WeekTotal(m.buckets, m.week)))

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		chart,
		"",
		HelpStyle.Render("  "+legend),
		"",
		strings.Join(rows, "\n"),
	)

	footer := StatusBarStyle.Width(max(m.width-2, 20)).Render(
		"[/]: change week  r: refresh  esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
