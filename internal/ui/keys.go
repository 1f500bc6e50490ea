package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search  key.Binding
	Sort    key.Binding
	Refresh key.Binding
	Open    key.Binding
	Logout  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Sort:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "sort column")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh prices")),
	Open:    key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "yahoo finance")),
	Logout:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Refresh, k.Open, k.Logout, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Sort, k.Refresh},
		{k.Open, k.Logout, k.Back, k.Quit},
	}
}
