package tui

import "github.com/charmbracelet/bubbles/key"

// addItemKeyMap defines key bindings for the item entry screen
type addItemKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Submit   key.Binding
	Back     key.Binding
	Help     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k addItemKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Activate, k.Submit, k.Back, k.Help}
}

// FullHelp returns keybindings for the expanded help view
func (k addItemKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Activate, k.Submit, k.Back, k.Help},
	}
}

func newAddItemKeyMap() addItemKeyMap {
	return addItemKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous section"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// chartKeyMap defines key bindings for the activity chart screen
type chartKeyMap struct {
	Next   key.Binding
	Load   key.Binding
	Scroll key.Binding
	Copy   key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k chartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Load, k.Scroll, k.Copy, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k chartKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Load, k.Scroll, k.Copy, k.Back}}
}

func newChartKeyMap() chartKeyMap {
	return chartKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch date"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("pgup", "pgdown"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy csv"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
	}
}

// accountKeyMap defines key bindings for the login, register and reset screens
type accountKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Register key.Binding
	Forgot   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k accountKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Register, k.Forgot, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k accountKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Submit}, {k.Register, k.Forgot, k.Back, k.Quit}}
}

// newAccountKeyMap enables the links that make sense for screen
func newAccountKeyMap(screen Screen) accountKeyMap {
	k := accountKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Register: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "register"),
		),
		Forgot: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "forgot password"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to login"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}

	if screen == ScreenLogin {
		k.Back.SetEnabled(false)
	} else {
		k.Register.SetEnabled(false)
		k.Forgot.SetEnabled(false)
	}
	return k
}

// menuKeyMap defines key bindings for the main menu
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select, k.Quit}}
}

func newMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpKeyMap defines key bindings for the help screen
type helpKeyMap struct {
	Scroll key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k helpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll, k.Back}}
}

func newHelpKeyMap() helpKeyMap {
	return helpKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "menu"),
		),
	}
}
