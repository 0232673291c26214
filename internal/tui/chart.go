package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/activity"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
	"github.com/carbonlog/carbon/internal/ui"
)

// chartRangeDays is the range the date inputs start with
const chartRangeDays = 7

// activityLoadedMsg carries an activity lookup back to the chart screen
type activityLoadedMsg struct {
	gen  uint64
	data *activity.Data
	err  error
}

// clipboardMsg reports the result of a CSV copy
type clipboardMsg struct {
	err error
}

// ChartModel is the activity chart screen
type ChartModel struct {
	sh *shared

	inputs []textinput.Model // start, end
	focus  int

	data     *activity.Data
	loading  bool
	spinner  spinner.Model
	viewport viewport.Model

	keys chartKeyMap
	help help.Model

	Width  int
	Height int
}

// NewChartModel prefills the last week and has no chart yet
func NewChartModel(sh *shared) ChartModel {
	r := activity.LastDays(chartRangeDays, sh.now())

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10
	start.Width = 12
	start.SetValue(r.Start)
	start.Focus()

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10
	end.Width = 12
	end.SetValue(r.End)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ChartModel{
		sh:       sh,
		inputs:   []textinput.Model{start, end},
		spinner:  s,
		viewport: viewport.New(defaultWidth-8, defaultHeight-16),
		keys:     newChartKeyMap(),
		help:     help.New(),
	}
}

// Init initializes the screen
func (m ChartModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize resizes the chart viewport
func (m *ChartModel) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.viewport.Width = max(width-8, 20)
	m.viewport.Height = max(height-16, 5)
	m.refreshViewport()
}

// Update handles messages for the chart screen
func (m ChartModel) Update(msg tea.Msg) (ChartModel, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		return m.handleLoaded(msg)

	case clipboardMsg:
		if msg.err != nil {
			logging.Warn("Clipboard copy failed", zap.Error(msg.err))
			return m, m.sh.flash("Could not copy to the clipboard.", tracker.SeverityDanger, m.sh.chartDelay())
		}
		return m, m.sh.flash("Chart data copied as CSV.", tracker.SeveritySuccess, m.sh.chartDelay())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenMenu)
		case key.Matches(msg, m.keys.Next):
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Load):
			return m.load()
		case key.Matches(msg, m.keys.Copy):
			return m.copyCSV()
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// load validates the range and fetches it
func (m ChartModel) load() (ChartModel, tea.Cmd) {
	r, err := activity.ValidateRange(m.inputs[0].Value(), m.inputs[1].Value())
	if err != nil {
		if !errors.Is(err, activity.ErrMissingDates) {
			logging.Debug("Rejected date range", zap.Error(err))
		}
		return m, m.sh.flash(err.Error(), tracker.SeverityWarning, m.sh.chartDelay())
	}

	m.loading = true
	gen := m.sh.chartGen.Next()
	return m, tea.Batch(fetchActivityCmd(m.sh, gen, r), m.spinner.Tick)
}

func (m ChartModel) handleLoaded(msg activityLoadedMsg) (ChartModel, tea.Cmd) {
	if !m.sh.chartGen.IsCurrent(msg.gen) {
		logging.Debug("Dropping stale activity lookup")
		return m, nil
	}
	m.loading = false

	switch {
	case msg.err != nil:
		logging.Warn("Activity lookup failed", zap.Error(msg.err))
		m.setData(nil)
		return m, m.sh.flash(activity.MsgFetchFailed, tracker.SeverityDanger, m.sh.chartDelay())

	case msg.data == nil || msg.data.Empty():
		m.setData(nil)
		return m, m.sh.flash(activity.MsgNoData, tracker.SeverityInfo, m.sh.chartDelay())
	}

	m.setData(msg.data)
	return m, nil
}

// setData replaces the chart; nil removes it
func (m *ChartModel) setData(d *activity.Data) {
	m.data = d
	m.refreshViewport()
	m.viewport.GotoTop()
}

func (m *ChartModel) refreshViewport() {
	if m.data == nil {
		m.viewport.SetContent("")
		return
	}
	var b strings.Builder
	b.WriteString(activity.Render(m.data, m.viewport.Width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Share of range total"))
	b.WriteString("\n")
	b.WriteString(ui.RenderShares(m.data, m.viewport.Width))
	m.viewport.SetContent(b.String())
}

func (m ChartModel) copyCSV() (ChartModel, tea.Cmd) {
	if m.data == nil {
		return m, m.sh.flash("Load a chart before copying.", tracker.SeverityInfo, m.sh.chartDelay())
	}
	csv, err := m.data.CSV()
	if err != nil {
		return m, m.sh.flash(err.Error(), tracker.SeverityDanger, m.sh.chartDelay())
	}
	copyFn := m.sh.copy
	return m, func() tea.Msg {
		return clipboardMsg{err: copyFn(csv)}
	}
}

func fetchActivityCmd(sh *shared, gen uint64, r activity.Range) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()
		data, err := sh.backend.ActivityData(ctx, r)
		return activityLoadedMsg{gen: gen, data: data, err: err}
	}
}

// View renders the chart screen
func (m ChartModel) View() string {
	helpText := m.help.View(m.keys)
	return RenderApplicationContainer(m.buildContent(), helpText, m.sh.who(), m.Width, m.Height)
}

func (m ChartModel) buildContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("View Data"))
	b.WriteString("\n")
	if banner := RenderBanner(m.sh.banner, m.viewport.Width); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	b.WriteString(LabelStyle.Render("Start date "))
	b.WriteString(m.inputs[0].View())
	b.WriteString("   ")
	b.WriteString(LabelStyle.Render("End date "))
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading activity...")
	case m.data != nil:
		b.WriteString(m.viewport.View())
	}
	return b.String()
}
