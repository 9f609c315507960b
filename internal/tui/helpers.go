package tui

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// hoursBar renders a fixed-width track filled proportionally to the
// regular and overtime shares of the day.
func hoursBar(regular, overtime, target float64, width int) string {
	if width <= 0 {
		return ""
	}
	regCells := int(regular / target * float64(width))
	if regCells > width {
		regCells = width
	}
	otCells := int(overtime / target * float64(width))
	if regCells+otCells > width {
		otCells = width - regCells
	}

	bar := RegularBarStyle.Render(repeatRune('█', regCells))
	bar += OvertimeBarStyle.Render(repeatRune('█', otCells))
	bar += HelpStyle.Render(repeatRune('░', width-regCells-otCells))
	return bar
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
