package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab          key.Binding
	ShiftTab     key.Binding
	Quit         key.Binding
	Help         key.Binding
	Refresh      key.Binding
	CompleteAll  key.Binding
	ClearTasks   key.Binding
	EditReminder key.Binding
	ToggleNotify key.Binding
	ClearHistory key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help, k.Refresh},
		{k.CompleteAll, k.ClearTasks, k.EditReminder, k.ToggleNotify, k.ClearHistory},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		CompleteAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "complete all"),
		),
		ClearTasks: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete all"),
		),
		EditReminder: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "set reminder"),
		),
		ToggleNotify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle reminder"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear history"),
		),
	}
}
