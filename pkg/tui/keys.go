package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Close  key.Binding
	Toggle key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "edit/review"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy names"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "close"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Toggle, k.Copy}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close, k.Toggle, k.Copy, k.Quit}}
}
