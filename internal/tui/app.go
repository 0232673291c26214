package tui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenForgot   Screen = "forgot"
	ScreenMenu     Screen = "menu"
	ScreenAddItem  Screen = "add-item"
	ScreenChart    Screen = "chart"
	ScreenHelp     Screen = "help"
)

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	AccountModel AccountModel
	MenuModel    MenuModel
	AddItemModel AddItemModel
	ChartModel   ChartModel
	HelpModel    HelpModel

	sh *shared

	// UI state
	Width  int
	Height int
}

// NewAppModel creates the application model. Unset options get defaults.
func NewAppModel(opts Options) AppModel {
	settings := opts.Settings
	if settings == nil {
		settings = config.NewSettings()
	}
	copyFn := opts.CopyToClipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sh := &shared{
		backend:  opts.Backend,
		settings: settings,
		banner:   &tracker.MessageBox{},
		username: opts.Username,
		onLogin:  opts.OnLogin,
		onLogout: opts.OnLogout,
		copy:     copyFn,
		now:      now,
	}

	start := opts.StartScreen
	if start == "" {
		start = ScreenLogin
	}

	m := AppModel{sh: sh, Width: defaultWidth, Height: defaultHeight}
	m.CurrentScreen = start
	m.initScreen(start)
	return m
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenLogin, ScreenRegister, ScreenForgot:
		return m.AccountModel.Init()
	case ScreenChart:
		return m.ChartModel.Init()
	}
	return nil
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen)

	case bannerClearMsg:
		m.sh.banner.Clear(msg.seq)
		return m, nil
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenLogin, ScreenRegister, ScreenForgot:
		m.AccountModel, cmd = m.AccountModel.Update(msg)
	case ScreenMenu:
		m.MenuModel, cmd = m.MenuModel.Update(msg)
	case ScreenAddItem:
		m.AddItemModel, cmd = m.AddItemModel.Update(msg)
	case ScreenChart:
		m.ChartModel, cmd = m.ChartModel.Update(msg)
	case ScreenHelp:
		m.HelpModel, cmd = m.HelpModel.Update(msg)
	}

	return m, cmd
}

// transitionTo switches screens. The target starts fresh, the banner is
// dropped and lookups still in flight for the old screen go stale.
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	logging.Debug("Screen transition",
		zap.String("from", string(m.CurrentScreen)),
		zap.String("to", string(screen)),
	)

	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen
	m.sh.banner.Reset()
	m.sh.itemGen.Invalidate()
	m.sh.chartGen.Invalidate()

	m.initScreen(screen)
	return m, m.Init()
}

func (m *AppModel) initScreen(screen Screen) {
	switch screen {
	case ScreenLogin, ScreenRegister, ScreenForgot:
		m.AccountModel = NewAccountModel(m.sh, screen)
	case ScreenMenu:
		m.MenuModel = NewMenuModel(m.sh)
	case ScreenAddItem:
		m.AddItemModel = NewAddItemModel(m.sh, m.sh.settings.Catalog())
	case ScreenChart:
		m.ChartModel = NewChartModel(m.sh)
	case ScreenHelp:
		m.HelpModel = NewHelpModel()
	}
	m.resize()
}

// resize copies terminal dimensions to the active screen
func (m *AppModel) resize() {
	switch m.CurrentScreen {
	case ScreenLogin, ScreenRegister, ScreenForgot:
		m.AccountModel.Width, m.AccountModel.Height = m.Width, m.Height
	case ScreenMenu:
		m.MenuModel.Width, m.MenuModel.Height = m.Width, m.Height
	case ScreenAddItem:
		m.AddItemModel.Width, m.AddItemModel.Height = m.Width, m.Height
	case ScreenChart:
		m.ChartModel.SetSize(m.Width, m.Height)
	case ScreenHelp:
		m.HelpModel.SetSize(m.Width, m.Height)
	}
}

// Banner returns the banner currently showing, for tests and status lines
func (m AppModel) Banner() (tracker.Banner, bool) {
	return m.sh.banner.Current()
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenLogin, ScreenRegister, ScreenForgot:
		return m.AccountModel.View()
	case ScreenMenu:
		return m.MenuModel.View()
	case ScreenAddItem:
		return m.AddItemModel.View()
	case ScreenChart:
		return m.ChartModel.View()
	case ScreenHelp:
		return m.HelpModel.View()
	default:
		return "Unknown screen"
	}
}

// Run starts the full-screen application and blocks until it exits
func Run(opts Options) error {
	if opts.Backend == nil {
		return errors.New("tui: no backend configured")
	}
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
