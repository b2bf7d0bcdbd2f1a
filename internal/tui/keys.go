package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Pick      key.Binding
	Quit      key.Binding
	HalfUp    key.Binding
	HalfDown  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	TopOfText key.Binding
	EndOfText key.Binding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

var keys = keyMap{
	Up:        binding("up", "prev", "up", "ctrl+k", "ctrl+p"),
	Down:      binding("dn", "next", "down", "ctrl+j", "ctrl+n"),
	Pick:      binding("enter", "copy show cmd", "enter"),
	Quit:      binding("esc", "quit", "esc", "ctrl+c"),
	HalfUp:    binding("C-u", "preview up", "ctrl+u"),
	HalfDown:  binding("C-d", "preview down", "ctrl+d"),
	PageUp:    binding("pgup", "preview page up", "pgup"),
	PageDown:  binding("pgdn", "preview page down", "pgdown"),
	TopOfText: binding("home", "preview top", "home"),
	EndOfText: binding("end", "preview end", "end"),
}

// hints lists the bindings shown in the status bar.
func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.HalfDown, k.Pick, k.Quit}
}
