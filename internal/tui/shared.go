package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carbonlog/carbon/internal/activity"
	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/tracker"
)

// Backend is the part of the tracker API the screens call
type Backend interface {
	FetchItems(ctx context.Context, kind tracker.Kind, itemType string) ([]tracker.ReferenceItem, error)
	SubmitLog(ctx context.Context, entry tracker.LogEntry) (*api.Result, error)
	Login(ctx context.Context, username, password string) (*api.Result, error)
	Register(ctx context.Context, username, email, password, confirmPassword string) (*api.Result, error)
	ForgotPassword(ctx context.Context, username, email string) (*api.Result, error)
	ActivityData(ctx context.Context, r activity.Range) (*activity.Data, error)
}

// Options configures the application
type Options struct {
	Backend  Backend
	Settings *config.Settings

	// StartScreen defaults to the login screen
	StartScreen Screen

	// Username is shown in the header once logged in
	Username string

	// OnLogin persists the session after a successful login
	OnLogin func(username string) error

	// OnLogout removes the persisted session
	OnLogout func() error

	// CopyToClipboard defaults to the system clipboard
	CopyToClipboard func(text string) error

	// Now defaults to time.Now
	Now func() time.Time
}

// shared is the state every screen reads: the backend, settings and the
// single banner area.
type shared struct {
	backend  Backend
	settings *config.Settings
	banner   *tracker.MessageBox
	itemGen  tracker.Generation
	chartGen tracker.Generation
	username string
	onLogin  func(string) error
	onLogout func() error
	copy     func(string) error
	now      func() time.Time
}

// bannerClearMsg fires when a banner's display time is up
type bannerClearMsg struct {
	seq uint64
}

// screenTransitionMsg asks the app to switch screens
type screenTransitionMsg struct {
	screen Screen
}

// navigate returns a command that switches screens
func navigate(screen Screen) tea.Cmd {
	return func() tea.Msg { return screenTransitionMsg{screen: screen} }
}

// navigateAfter switches screens after d
func navigateAfter(screen Screen, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return screenTransitionMsg{screen: screen} })
}

// flash shows a banner. A positive delay schedules its clear; otherwise it
// stays until replaced.
func (s *shared) flash(text string, sev tracker.Severity, delay time.Duration) tea.Cmd {
	b := s.banner.Show(text, sev)
	if delay <= 0 {
		return nil
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return bannerClearMsg{seq: b.Seq} })
}

// requestContext bounds a backend call by the configured timeout
func (s *shared) requestContext() (context.Context, context.CancelFunc) {
	timeout := config.DefaultTimeoutSeconds * time.Second
	if s.settings != nil {
		timeout = s.settings.Timeout()
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (s *shared) itemFormDelay() time.Duration {
	if s.settings == nil {
		return 3 * time.Second
	}
	return s.settings.ItemFormBannerDelay()
}

func (s *shared) chartDelay() time.Duration {
	if s.settings == nil {
		return 4 * time.Second
	}
	return s.settings.ChartBannerDelay()
}

func (s *shared) userID() string {
	if s.settings == nil {
		return ""
	}
	return s.settings.UserID
}

func (s *shared) who() string {
	server := ""
	if s.settings != nil {
		server = s.settings.Server.URL
	}
	switch {
	case s.username != "" && server != "":
		return s.username + " @ " + server
	case s.username != "":
		return s.username
	default:
		return server
	}
}
