package cli

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explore key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding

	Affinity key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		Affinity: key.NewBinding(key.WithKeys("tab", "a"), key.WithHelp("tab", "next affinity")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Affinity, k.Quit}
}
