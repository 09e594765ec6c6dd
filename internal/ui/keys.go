package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Down        key.Binding
	Up          key.Binding
	Types       key.Binding
	Size        key.Binding
	Age         key.Binding
	Sort        key.Binding
	Delete      key.Binding
	ForceDelete key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "navigate"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "up"),
		),
		Types: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "types"),
		),
		Size: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "size filter"),
		),
		Age: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "age filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "sort"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ForceDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete now"),
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
	return []key.Binding{k.Down, k.Types, k.Size, k.Age, k.Sort, k.Delete, k.ForceDelete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Delete, k.ForceDelete},
		{k.Types, k.Size, k.Age, k.Sort, k.Help, k.Quit},
	}
}
