package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/tracker"
)

// focusZone is the part of the item screen receiving keys
type focusZone int

const (
	focusColumn focusZone = iota
	focusSelect
	focusFields
)

// itemsLoadedMsg carries a reference item lookup back to the screen
type itemsLoadedMsg struct {
	gen      uint64
	kind     tracker.Kind
	itemType string
	items    []tracker.ReferenceItem
	err      error
}

// submitResultMsg carries a log submission back to the screen
type submitResultMsg struct {
	gen    uint64
	kind   tracker.Kind
	result *api.Result
	err    error
}

// AddItemModel is the item entry screen: the category/item-type column on
// the left and the dynamic form on the right.
type AddItemModel struct {
	sh       *shared
	taxonomy tracker.Taxonomy

	state    tracker.State
	buttons  tracker.ButtonSet
	cursor   int
	itemType string

	form       *tracker.Form
	inputs     []textinput.Model
	inputNames []string
	field      int
	focus      focusZone

	loading    bool
	submitting bool
	spinner    spinner.Model

	keys addItemKeyMap
	help help.Model

	Width  int
	Height int
}

// NewAddItemModel starts in category mode with no form
func NewAddItemModel(sh *shared, taxonomy tracker.Taxonomy) AddItemModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	state := tracker.InitialState()
	return AddItemModel{
		sh:       sh,
		taxonomy: taxonomy,
		state:    state,
		buttons:  tracker.Buttons(state, taxonomy),
		spinner:  s,
		keys:     newAddItemKeyMap(),
		help:     help.New(),
	}
}

// Init initializes the screen
func (m AddItemModel) Init() tea.Cmd {
	return nil
}

type addItemHandler func(m AddItemModel, msg tea.KeyMsg) (AddItemModel, tea.Cmd)

// addItemHandlers routes keys by focus zone
var addItemHandlers = map[focusZone]addItemHandler{
	focusColumn: AddItemModel.updateColumn,
	focusSelect: AddItemModel.updateSelect,
	focusFields: AddItemModel.updateFields,
}

// Update handles messages for the item screen
func (m AddItemModel) Update(msg tea.Msg) (AddItemModel, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		return m.handleItemsLoaded(msg)

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case spinner.TickMsg:
		if !m.loading && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenMenu)
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			m.cycleFocus(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycleFocus(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help) && m.focus != focusFields:
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return addItemHandlers[m.focus](m, msg)
	}

	if m.focus == focusFields && len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AddItemModel) updateColumn(msg tea.KeyMsg) (AddItemModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.buttons.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	}
	return m, nil
}

func (m AddItemModel) updateSelect(msg tea.KeyMsg) (AddItemModel, tea.Cmd) {
	if m.form == nil || !m.form.HasSelect() {
		return m, nil
	}

	switch msg.String() {
	case "up", "left":
		if m.form.Selected > 0 {
			m.setForm(m.form.Select(m.form.Selected-1, m.sh.now()))
		}
	case "down", "right":
		if m.form.Selected < len(m.form.Options)-1 {
			m.setForm(m.form.Select(m.form.Selected+1, m.sh.now()))
		}
	case "enter":
		if len(m.inputs) > 0 {
			m.focusOn(focusFields)
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m AddItemModel) updateFields(msg tea.KeyMsg) (AddItemModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.field > 0 {
			m.field--
			m.focusOn(focusFields)
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.field < len(m.inputs)-1 {
			m.field++
			m.focusOn(focusFields)
		}
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	f := m.form.SetValue(m.inputNames[m.field], m.inputs[m.field].Value())
	m.form = &f
	return m, cmd
}

// activate fires the event of the column entry under the cursor
func (m AddItemModel) activate() (AddItemModel, tea.Cmd) {
	ev, ok := m.buttons.EventAt(m.cursor)
	if !ok {
		return m, nil
	}

	from := m.state.Mode
	next, effect := tracker.Transition(m.state, m.taxonomy, ev)
	if effect.Kind != tracker.EffectNone {
		logging.LogTransition(string(from), string(next.Mode), ev.Label)
	}
	m.state = next

	switch effect.Kind {
	case tracker.EffectShowItemTypes, tracker.EffectShowCategories:
		m.buttons = tracker.Buttons(m.state, m.taxonomy)
		m.cursor = 0
		m.itemType = ""
		m.clearForm()
		m.sh.itemGen.Invalidate()
		m.loading = false

	case tracker.EffectLoadItems:
		m.itemType = effect.ItemType
		m.clearForm()
		m.loading = true
		gen := m.sh.itemGen.Next()
		return m, tea.Batch(
			fetchItemsCmd(m.sh, gen, effect.Category, effect.ItemType),
			m.spinner.Tick,
		)
	}

	return m, nil
}

func (m AddItemModel) handleItemsLoaded(msg itemsLoadedMsg) (AddItemModel, tea.Cmd) {
	if !m.sh.itemGen.IsCurrent(msg.gen) {
		logging.Debug("Dropping stale item lookup",
			zap.String("kind", string(msg.kind)),
			zap.String("item_type", msg.itemType),
		)
		return m, nil
	}
	m.loading = false

	var f tracker.Form
	if msg.err != nil {
		logging.Warn("Item lookup failed",
			zap.String("kind", string(msg.kind)),
			zap.String("item_type", msg.itemType),
			zap.Error(msg.err),
		)
		f = tracker.ErrorForm(msg.kind, msg.itemType)
	} else {
		f = tracker.NewForm(msg.kind, msg.itemType, msg.items, m.sh.now())
	}

	m.setForm(f)
	if f.HasSelect() {
		m.focusOn(focusSelect)
	}
	return m, nil
}

// submit validates the form and posts the entry
func (m AddItemModel) submit() (AddItemModel, tea.Cmd) {
	if m.form == nil || !m.form.HasSelect() || m.submitting {
		return m, nil
	}

	entry, err := tracker.BuildEntry(m.sh.userID(), *m.form)
	if err != nil {
		return m, m.sh.flash(err.Error(), tracker.SeverityDanger, m.sh.itemFormDelay())
	}

	m.submitting = true
	return m, tea.Batch(submitLogCmd(m.sh, m.sh.itemGen.Current(), entry), m.spinner.Tick)
}

func (m AddItemModel) handleSubmitResult(msg submitResultMsg) (AddItemModel, tea.Cmd) {
	m.submitting = false
	delay := m.sh.itemFormDelay()

	switch {
	case msg.err != nil:
		logging.Warn("Log submission failed",
			zap.String("kind", string(msg.kind)),
			zap.Error(msg.err),
		)
		return m, m.sh.flash(tracker.SubmitErrorMessage, tracker.SeverityDanger, delay)

	case !msg.result.Success:
		return m, m.sh.flash(tracker.FailureMessage(msg.result.Message), tracker.SeverityDanger, delay)
	}

	// A newer lookup owns the form area now
	if m.sh.itemGen.IsCurrent(msg.gen) {
		m.clearForm()
		m.focusOn(focusColumn)
	}
	return m, m.sh.flash(tracker.SuccessMessage(msg.kind), tracker.SeveritySuccess, delay)
}

// setForm replaces the form and rebuilds the inputs for its editable fields
func (m *AddItemModel) setForm(f tracker.Form) {
	m.form = &f
	m.inputs = nil
	m.inputNames = nil
	m.field = 0

	for _, spec := range f.Fields {
		if spec.ReadOnly {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = 16
		ti.Width = 20
		ti.SetValue(spec.Value)
		m.inputs = append(m.inputs, ti)
		m.inputNames = append(m.inputNames, spec.Name)
	}

	if m.focus == focusFields {
		m.focusOn(focusFields)
	}
}

func (m *AddItemModel) clearForm() {
	m.form = nil
	m.inputs = nil
	m.inputNames = nil
	m.field = 0
	if m.focus != focusColumn {
		m.focusOn(focusColumn)
	}
}

// focusOn moves keyboard focus and keeps exactly one input focused while
// the fields have it
func (m *AddItemModel) focusOn(zone focusZone) {
	if zone == focusFields && len(m.inputs) == 0 {
		zone = focusColumn
	}
	m.focus = zone
	for i := range m.inputs {
		if zone == focusFields && i == m.field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// cycleFocus steps through the zones that currently exist
func (m *AddItemModel) cycleFocus(step int) {
	zones := []focusZone{focusColumn}
	if m.form != nil && m.form.HasSelect() {
		zones = append(zones, focusSelect)
	}
	if len(m.inputs) > 0 {
		zones = append(zones, focusFields)
	}

	idx := 0
	for i, z := range zones {
		if z == m.focus {
			idx = i
		}
	}
	idx = (idx + step + len(zones)) % len(zones)
	m.focusOn(zones[idx])
}

func fetchItemsCmd(sh *shared, gen uint64, kind tracker.Kind, itemType string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()
		items, err := sh.backend.FetchItems(ctx, kind, itemType)
		return itemsLoadedMsg{gen: gen, kind: kind, itemType: itemType, items: items, err: err}
	}
}

func submitLogCmd(sh *shared, gen uint64, entry tracker.LogEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := sh.requestContext()
		defer cancel()
		result, err := sh.backend.SubmitLog(ctx, entry)
		if err == nil && result == nil {
			err = errors.New("empty response")
		}
		return submitResultMsg{gen: gen, kind: entry.Kind, result: result, err: err}
	}
}

// View renders the item screen
func (m AddItemModel) View() string {
	helpText := m.help.View(m.keys)
	return RenderApplicationContainer(m.buildContent(), helpText, m.sh.who(), m.Width, m.Height)
}

func (m AddItemModel) buildContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Add Item"))
	b.WriteString("\n")
	if banner := RenderBanner(m.sh.banner, m.contentWidth()); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderColumn(), m.renderFormArea()))
	return b.String()
}

func (m AddItemModel) contentWidth() int {
	w := m.Width
	if w <= 0 {
		w = defaultWidth
	}
	return w - 8
}

func (m AddItemModel) renderColumn() string {
	var b strings.Builder
	for i := 0; i < m.buttons.Len(); i++ {
		back := m.buttons.Back && i == len(m.buttons.Labels)
		label := m.buttons.LabelAt(i)
		if back {
			label = "← " + label
		}
		b.WriteString(buttonStyle(m.buttons.Style, m.focus == focusColumn && i == m.cursor, back).Render(label))
		if i < m.buttons.Len()-1 {
			b.WriteString("\n")
		}
	}

	style := ColumnStyle
	if m.focus == focusColumn {
		style = FocusedColumnStyle
	}
	return style.Render(b.String())
}

func (m AddItemModel) renderFormArea() string {
	var b strings.Builder

	title, details := tracker.Heading(m.itemType)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(details))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading " + strings.ToLower(m.itemType) + "...")
		return b.String()
	case m.form == nil:
		return b.String()
	case m.form.Notice != "":
		b.WriteString(NoticeStyle.Render(m.form.Notice))
		return b.String()
	}

	b.WriteString(m.renderSelect())
	b.WriteString("\n\n")

	input := 0
	for _, spec := range m.form.Fields {
		b.WriteString(LabelStyle.Render(spec.Label))
		b.WriteString("\n")
		if spec.ReadOnly {
			b.WriteString(ReadOnlyStyle.Render("  " + spec.Value))
		} else {
			b.WriteString("  " + m.inputs[input].View())
			input++
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if kg, ok := m.form.Estimate(); ok {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Estimated footprint: %.2f kg CO₂e", kg)))
		b.WriteString("\n")
	}

	submit := "[ Submit ]"
	if m.submitting {
		submit = m.spinner.View() + " Submitting..."
	}
	b.WriteString(lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Render(submit))
	return b.String()
}

func (m AddItemModel) renderSelect() string {
	opt, _ := m.form.SelectedOption()
	label := fmt.Sprintf("Select %s:", m.form.Kind.Label())
	value := fmt.Sprintf("‹ %s ›  (%d/%d)", opt.Label, m.form.Selected+1, len(m.form.Options))

	style := lipgloss.NewStyle().Padding(0, 1)
	if m.focus == focusSelect {
		style = style.Reverse(true)
	}
	return LabelStyle.Render(label) + "\n  " + style.Render(value)
}
