package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's key bindings. The grab-and-place keys mirror
// the three drop positions a pointer gesture would resolve to.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Grab       key.Binding
	Cancel     key.Binding
	DropBefore key.Binding
	DropAfter  key.Binding
	DropInto   key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Add        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" ", "g"),
			key.WithHelp("space", "grab node"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel grab"),
		),
		DropBefore: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "drop before"),
		),
		DropAfter: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "drop after"),
		),
		DropInto: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "drop into/onto"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete node"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle AND/OR"),
		),
		Add: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new condition"),
		),
	}
}
