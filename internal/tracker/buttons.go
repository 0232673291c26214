package tracker

// BackLabel is the label of the control that returns to category mode
const BackLabel = "Back to Categories"

// ButtonStyle distinguishes top-level category buttons from item-type buttons
type ButtonStyle string

const (
	StylePrimary   ButtonStyle = "primary"
	StyleSecondary ButtonStyle = "secondary"
)

// ButtonSet is the full content of the selection column. Rendering replaces
// whatever was shown before.
type ButtonSet struct {
	Labels []string
	Style  ButtonStyle
	Back   bool
}

// Buttons returns the column for the current mode
func Buttons(s State, t Taxonomy) ButtonSet {
	kind, ok := s.Mode.Kind()
	if !ok {
		return ButtonSet{Labels: append([]string(nil), t.Categories...), Style: StylePrimary}
	}
	return ButtonSet{
		Labels: append([]string(nil), t.ItemTypes(kind)...),
		Style:  StyleSecondary,
		Back:   true,
	}
}

// Len counts the entries including the back control
func (b ButtonSet) Len() int {
	if b.Back {
		return len(b.Labels) + 1
	}
	return len(b.Labels)
}

// LabelAt returns the text of entry i
func (b ButtonSet) LabelAt(i int) string {
	if i >= 0 && i < len(b.Labels) {
		return b.Labels[i]
	}
	if b.Back && i == len(b.Labels) {
		return BackLabel
	}
	return ""
}

// EventAt returns the event fired by activating entry i
func (b ButtonSet) EventAt(i int) (Event, bool) {
	if i >= 0 && i < len(b.Labels) {
		return SelectEvent(b.Labels[i]), true
	}
	if b.Back && i == len(b.Labels) {
		return BackEvent(), true
	}
	return Event{}, false
}
