package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	Tab       key.Binding
	Enter     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Timer     key.Binding
	Reports   key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	PrevWeek:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous week")),
	NextWeek:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next week")),
	Today:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "jump to today")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit entry")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
	Duplicate: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "duplicate entry")),
	Timer:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timer")),
	Reports:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reports")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/cancel")),
}
