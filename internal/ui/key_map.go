package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	add       key.Binding
	like      key.Binding
	dislike   key.Binding
	favourite key.Binding
	remove    key.Binding
	yes       key.Binding
	no        key.Binding
	refresh   key.Binding
	catalog   key.Binding
	library   key.Binding
	users     key.Binding
	admin     key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to collection")),
		like:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		dislike:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dislike")),
		favourite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favourite")),
		remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		catalog:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "catalog")),
		library:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "collection")),
		users:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "users")),
		admin:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "admin")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.add, k.like, k.dislike, k.favourite},
		{k.remove, k.refresh, k.quit},
	}
}
