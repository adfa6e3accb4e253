package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings. Scrolling keys belong to the grid
// view (views.GridKeyMap).
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Reload key.Binding
	Back   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Reload: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
