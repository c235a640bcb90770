package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board key bindings. It satisfies help.KeyMap.
type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	NextCol   key.Binding
	PrevCol   key.Binding
	NewTask   key.Binding
	Submit    key.Binding
	Back      key.Binding
	Delete    key.Binding
	PickUp    key.Binding
	Drop      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "column left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "column right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "card up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "card down"),
		),
		NextCol: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next column"),
		),
		PrevCol: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous column"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("a", "i"),
			key.WithHelp("a/i", "new task"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add task"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input / cancel drag"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "d", "delete"),
			key.WithHelp("x/d", "delete card"),
		),
		PickUp: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pick up card"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space/enter", "drop card"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp is the one-line help shown under the board.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NewTask, k.PickUp, k.Delete, k.Help, k.Quit}
}

// FullHelp is the expanded help shown by ?.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.NextCol, k.PrevCol},
		{k.NewTask, k.Submit, k.Back, k.Delete},
		{k.PickUp, k.Drop, k.Help, k.Quit},
	}
}
