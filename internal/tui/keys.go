package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var defaultKeys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "columna")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "columna")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "tarjeta")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "tarjeta")),
	MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←/H", "etapa anterior")),
	MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→/L", "etapa siguiente")),
	MoveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "subir")),
	MoveDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "bajar")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
}

// ShortHelp implementa help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.Reload, k.Help, k.Quit}
}

// FullHelp implementa help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Reload, k.Help, k.Quit},
	}
}
