// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// NavigatorKeys are the bindings shared by every navigator screen. Menu
// entries are also reachable through their digit.
type NavigatorKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// Navigator holds the default navigator bindings.
var Navigator = NavigatorKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload input"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k NavigatorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Reload, k.Quit}
}

// FullHelp groups the bindings for an expanded help view.
func (k NavigatorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Reload, k.Quit},
	}
}
