package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/account"
	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
)

// accountResultMsg carries an account request outcome back to its screen
type accountResultMsg struct {
	screen   Screen
	username string
	outcome  account.Outcome
}

// accountField is one labeled input of an account form
type accountField struct {
	label  string
	secret bool
}

var accountForms = map[Screen]struct {
	title  string
	fields []accountField
}{
	ScreenLogin: {
		title:  "Login",
		fields: []accountField{{label: "Username"}, {label: "Password", secret: true}},
	},
	ScreenRegister: {
		title: "Register",
		fields: []accountField{
			{label: "Username"},
			{label: "Email"},
			{label: "Password", secret: true},
			{label: "Confirm Password", secret: true},
		},
	},
	ScreenForgot: {
		title:  "Forgot Password",
		fields: []accountField{{label: "Username"}, {label: "Email"}},
	},
}

// AccountModel is the login, registration or password reset screen
type AccountModel struct {
	sh     *shared
	screen Screen

	inputs     []textinput.Model
	focus      int
	submitting bool

	keys accountKeyMap
	help help.Model

	Width  int
	Height int
}

// NewAccountModel builds the form for screen, which must be one of the
// account screens
func NewAccountModel(sh *shared, screen Screen) AccountModel {
	form := accountForms[screen]

	inputs := make([]textinput.Model, len(form.fields))
	for i, f := range form.fields {
		ti := textinput.New()
		ti.Placeholder = f.label
		ti.CharLimit = 128
		ti.Width = 32
		if f.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return AccountModel{
		sh:     sh,
		screen: screen,
		inputs: inputs,
		keys:   newAccountKeyMap(screen),
		help:   help.New(),
	}
}

// Init initializes the screen
func (m AccountModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the account screen
func (m AccountModel) Update(msg tea.Msg) (AccountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountResultMsg:
		if msg.screen != m.screen {
			return m, nil
		}
		return m.handleResult(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Register):
			return m, navigate(ScreenRegister)
		case key.Matches(msg, m.keys.Forgot):
			return m, navigate(ScreenForgot)
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenLogin)
		case key.Matches(msg, m.keys.Next):
			m.moveFocus(1)
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Prev):
			m.moveFocus(-1)
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AccountModel) moveFocus(step int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m AccountModel) value(i int) string {
	return m.inputs[i].Value()
}

// submit validates the form and sends it. Validation banners stay until
// the next submit.
func (m AccountModel) submit() (AccountModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenLogin:
		creds, err := account.Credentials{Username: m.value(0), Password: m.value(1)}.Validate()
		if err != nil {
			return m, m.sh.flash(err.Error(), tracker.SeverityDanger, 0)
		}
		cmd = loginCmd(m.sh, creds)

	case ScreenRegister:
		reg, err := account.Registration{
			Username:        m.value(0),
			Email:           m.value(1),
			Password:        m.value(2),
			ConfirmPassword: m.value(3),
		}.Validate()
		if err != nil {
			return m, m.sh.flash(err.Error(), tracker.SeverityDanger, 0)
		}
		cmd = registerCmd(m.sh, reg)

	case ScreenForgot:
		req, err := account.ResetRequest{Username: m.value(0), Email: m.value(1)}.Validate()
		if err != nil {
			return m, m.sh.flash(err.Error(), tracker.SeverityDanger, 0)
		}
		cmd = forgotCmd(m.sh, req)
	}

	m.submitting = true
	return m, cmd
}

func (m AccountModel) handleResult(msg accountResultMsg) (AccountModel, tea.Cmd) {
	m.submitting = false
	flash := m.sh.flash(msg.outcome.Text, msg.outcome.Severity, 0)
	if !msg.outcome.Redirect {
		return m, flash
	}

	switch m.screen {
	case ScreenLogin:
		m.sh.username = msg.username
		return m, tea.Batch(flash, navigateAfter(ScreenMenu, account.RedirectDelay))
	case ScreenRegister:
		return m, tea.Batch(flash, navigateAfter(ScreenLogin, account.RedirectDelay))
	}
	return m, flash
}

func loginCmd(sh *shared, creds account.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()

		res, err := sh.backend.Login(ctx, creds.Username, creds.Password)
		success, message := resultFields(res)
		if err != nil {
			logging.Warn("Login request failed", zap.String("username", creds.Username), zap.Error(err))
		}
		if err == nil && success && sh.onLogin != nil {
			if serr := sh.onLogin(creds.Username); serr != nil {
				logging.Warn("Could not save session", zap.Error(serr))
			}
		}
		return accountResultMsg{
			screen:   ScreenLogin,
			username: creds.Username,
			outcome:  account.LoginOutcome(success, message, err),
		}
	}
}

func registerCmd(sh *shared, reg account.Registration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()

		res, err := sh.backend.Register(ctx, reg.Username, reg.Email, reg.Password, reg.ConfirmPassword)
		if err != nil {
			logging.Warn("Registration request failed", zap.String("username", reg.Username), zap.Error(err))
		}
		success, message := resultFields(res)
		return accountResultMsg{
			screen:   ScreenRegister,
			username: reg.Username,
			outcome:  account.RegisterOutcome(success, message, err),
		}
	}
}

func forgotCmd(sh *shared, req account.ResetRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()

		res, err := sh.backend.ForgotPassword(ctx, req.Username, req.Email)
		if err != nil {
			logging.Warn("Password reset request failed", zap.String("username", req.Username), zap.Error(err))
		}
		success, message := resultFields(res)
		return accountResultMsg{
			screen:   ScreenForgot,
			username: req.Username,
			outcome:  account.ForgotOutcome(success, message, err),
		}
	}
}

func resultFields(res *api.Result) (bool, string) {
	if res == nil {
		return false, ""
	}
	return res.Success, res.Message
}

// View renders the account screen
func (m AccountModel) View() string {
	helpText := m.help.View(m.keys)
	return RenderApplicationContainer(m.buildContent(), helpText, m.sh.who(), m.Width, m.Height)
}

func (m AccountModel) buildContent() string {
	form := accountForms[m.screen]
	var b strings.Builder

	b.WriteString(RenderTitle(form.title))
	b.WriteString("\n")
	if banner := RenderBanner(m.sh.banner, 60); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	for i, f := range form.fields {
		b.WriteString(LabelStyle.Render(f.label))
		b.WriteString("\n  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(SubtitleStyle.Render("Sending..."))
	}
	return b.String()
}
