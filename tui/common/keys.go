package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	Compose     key.Binding // i — focus the composer
	Share       key.Binding // ctrl+d — share the draft
	Attach      key.Binding // ctrl+o — pick a photo to attach
	Editor      key.Binding // ctrl+e — edit draft in $EDITOR
	Attachments key.Binding // tab — move focus between text and attachments
	RemoveImage key.Binding // x — drop the selected attachment
	Menu        key.Binding // m — toggle the post overflow menu
	Enter       key.Binding
	Back        key.Binding
	ChangePhoto key.Binding // p — replace the profile photo
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Compose: key.NewBinding(
			key.WithKeys("i", "n"),
			key.WithHelp("i", "write something"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "share"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "attach photo"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "$EDITOR"),
		),
		Attachments: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "attachments"),
		),
		RemoveImage: key.NewBinding(
			key.WithKeys("x", "backspace", "delete"),
			key.WithHelp("x", "remove"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "."),
			key.WithHelp("m", "options"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		ChangePhoto: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change photo"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}
