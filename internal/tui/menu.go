package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
)

// logoutDoneMsg is sent once the session has been dropped
type logoutDoneMsg struct {
	err error
}

type menuItem struct {
	label  string
	screen Screen
}

var menuItems = []menuItem{
	{label: "Add Item", screen: ScreenAddItem},
	{label: "View Data", screen: ScreenChart},
	{label: "Help", screen: ScreenHelp},
	{label: "Logout", screen: ScreenLogin},
	{label: "Quit"},
}

// MenuModel is the main menu shown after login
type MenuModel struct {
	sh     *shared
	cursor int

	keys menuKeyMap
	help help.Model

	Width  int
	Height int
}

// NewMenuModel creates the main menu
func NewMenuModel(sh *shared) MenuModel {
	return MenuModel{
		sh:   sh,
		keys: newMenuKeyMap(),
		help: help.New(),
	}
}

// Init initializes the screen
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		if msg.err != nil {
			logging.Warn("Logout failed", zap.Error(msg.err))
			return m, m.sh.flash(msg.err.Error(), tracker.SeverityDanger, 0)
		}
		m.sh.username = ""
		return m, navigate(ScreenLogin)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			return m.choose()
		}
	}
	return m, nil
}

func (m MenuModel) choose() (MenuModel, tea.Cmd) {
	item := menuItems[m.cursor]
	switch item.label {
	case "Quit":
		return m, tea.Quit
	case "Logout":
		onLogout := m.sh.onLogout
		return m, func() tea.Msg {
			if onLogout == nil {
				return logoutDoneMsg{}
			}
			return logoutDoneMsg{err: onLogout()}
		}
	}
	return m, navigate(item.screen)
}

// View renders the menu
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Main Menu"))
	b.WriteString("\n")
	if banner := RenderBanner(m.sh.banner, 60); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	for i, item := range menuItems {
		b.WriteString(RenderMenuItem(item.label, i == m.cursor))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.help.View(m.keys), m.sh.who(), m.Width, m.Height)
}
