package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	MarkRead     key.Binding
	MarkAllRead  key.Binding
	Remove       key.Binding
	Clear        key.Binding
	Refresh      key.Binding
	Acknowledge  key.Binding
	Details      key.Binding
	DismissToast key.Binding
	ClearToasts  key.Binding
	DismissError key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "mark all read"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "acknowledge"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "dismiss toast"),
		),
		ClearToasts: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "clear toasts"),
		),
		DismissError: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MarkRead, k.Acknowledge, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Details},
		{k.MarkRead, k.MarkAllRead, k.Acknowledge},
		{k.Remove, k.Clear, k.Refresh},
		{k.DismissToast, k.ClearToasts, k.DismissError},
		{k.Help, k.Quit},
	}
}
