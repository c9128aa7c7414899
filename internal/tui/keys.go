package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Insert    key.Binding
	Indent    key.Binding
	Outdent   key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Remove    key.Binding
	EditTitle key.Binding
	EditBody  key.Binding
	External  key.Binding
	Filter    key.Binding
	Toggle    key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Copy      key.Binding
	Save      key.Binding
	Reload    key.Binding
	Drag      key.Binding
	Before    key.Binding
	After     key.Binding
	Inside    key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Insert:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new node")),
		Indent:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Outdent:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent")),
		MoveUp:    key.NewBinding(key.WithKeys("alt+up", "K"), key.WithHelp("alt+↑", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("alt+down", "J"), key.WithHelp("alt+↓", "move down")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		EditTitle: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		EditBody:  key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit body")),
		External:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "body in $EDITOR")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fold")),
		Undo:      key.NewBinding(key.WithKeys("ctrl+z", "u"), key.WithHelp("ctrl+z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y", "ctrl+r"), key.WithHelp("ctrl+y", "redo")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Drag:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "pick up")),
		Before:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "drop before")),
		After:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "drop after")),
		Inside:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "drop inside")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Indent, k.EditTitle, k.Filter, k.Undo, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Filter},
		{k.Insert, k.EditTitle, k.EditBody, k.External, k.Remove},
		{k.Indent, k.Outdent, k.MoveUp, k.MoveDown},
		{k.Drag, k.Before, k.After, k.Inside},
		{k.Undo, k.Redo, k.Copy, k.Save, k.Reload, k.Quit},
	}
}

// dragKeys is the help shown while a node is picked up.
func (k keyMap) dragKeys() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Before, k.After, k.Inside, k.Cancel}
}
