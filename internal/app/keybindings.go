package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings for the application.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	FocusTree  key.Binding
	FocusView  key.Binding
	CycleTheme key.Binding
	ShrinkTree key.Binding
	WidenTree  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h", "?"),
			key.WithHelp("ctrl+h", "help"),
		),
		FocusTree: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "focus tree"),
		),
		FocusView: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "focus preview"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("alt+t", "cycle theme"),
		),
		ShrinkTree: key.NewBinding(
			key.WithKeys("alt+["),
			key.WithHelp("alt+[", "shrink tree"),
		),
		WidenTree: key.NewBinding(
			key.WithKeys("alt+]"),
			key.WithHelp("alt+]", "widen tree"),
		),
	}
}

// ShortHelp returns the short help text for the key map.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.FocusTree, k.FocusView}
}

// FullHelp returns the full help text for the key map.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusTree, k.FocusView},
		{k.ShrinkTree, k.WidenTree, k.CycleTheme},
		{k.Help, k.Quit},
	}
}
