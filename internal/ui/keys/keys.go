package keys

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Enter     key.Binding
	NextField key.Binding
	Register  key.Binding
	Login     key.Binding
	Forgot    key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

var Keys = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	NextField: key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down"), key.WithHelp("tab", "next field")),
	Register:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
	Login:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in")),
	Forgot:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "forgot password")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Logout:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
	Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete account")),
	Confirm:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Cancel:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
}

// Help renders bindings as "key action" pairs joined by two spaces.
func Help(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += "  "
		}
		h := b.Help()
		s += h.Key + " " + h.Desc
	}
	return s
}
