package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/logging"
)

const helpMarkdown = `# Using the tracker

## Adding an item

1. Pick a category (**Appliance**, **Food** or **Transport**) in the left column.
2. Pick an item type. The matching items are loaded from the server.
3. Choose an item with ←/→, then fill in the amount:
   * appliances: hours used (the wattage can be adjusted),
   * transport: miles travelled,
   * food: quantity in kg.
4. Press **enter** or **ctrl+s** to log it. The log time is stamped automatically.

Use **Back to Categories** to return to the category list.

## Viewing data

Enter a start and end date as ` + "`YYYY-MM-DD`" + ` and press **enter**. Each
day shows one stacked bar split into Appliance, Food and Transport.
**ctrl+y** copies the loaded range as CSV.

## Keys

| Key | Action |
| --- | --- |
| tab / shift+tab | move between sections |
| enter | select or submit |
| esc | back to the menu |
| ctrl+c | quit |
`

// HelpModel renders the usage guide
type HelpModel struct {
	viewport viewport.Model
	keys     helpKeyMap
	help     help.Model

	Width  int
	Height int
}

// NewHelpModel creates the help screen
func NewHelpModel() HelpModel {
	m := HelpModel{
		viewport: viewport.New(defaultWidth-8, defaultHeight-8),
		keys:     newHelpKeyMap(),
		help:     help.New(),
	}
	m.viewport.SetContent(renderHelp(m.viewport.Width))
	return m
}

// renderHelp renders the guide as styled markdown, falling back to the raw
// text if the renderer fails
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Debug("Markdown renderer unavailable", zap.Error(err))
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		logging.Debug("Markdown render failed", zap.Error(err))
		return helpMarkdown
	}
	return out
}

// Init initializes the screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// SetSize resizes the guide and re-wraps it
func (m *HelpModel) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.viewport.Width = max(width-8, 20)
	m.viewport.Height = max(height-8, 5)
	m.viewport.SetContent(renderHelp(m.viewport.Width))
}

// Update handles messages for the help screen
func (m HelpModel) Update(msg tea.Msg) (HelpModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Back) {
		return m, navigate(ScreenMenu)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help screen
func (m HelpModel) View() string {
	return RenderApplicationContainer(m.viewport.View(), m.help.View(m.keys), "", m.Width, m.Height)
}
