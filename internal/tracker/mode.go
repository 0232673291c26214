package tracker

import (
	"slices"
	"strings"
)

// Mode is the selection stage of the item form
type Mode string

const (
	ModeCategory  Mode = "category"
	ModeAppliance Mode = "appliance"
	ModeFood      Mode = "food"
	ModeTransport Mode = "transport"
)

// Kind returns the category an item-type mode belongs to
func (m Mode) Kind() (Kind, bool) {
	switch m {
	case ModeAppliance:
		return KindAppliance, true
	case ModeFood:
		return KindFood, true
	case ModeTransport:
		return KindTransport, true
	}
	return "", false
}

// ModeFor returns the item-type mode for a category
func ModeFor(k Kind) Mode {
	return Mode(k)
}

// Taxonomy is the catalog the item form walks through: the top-level
// categories and, per category, the item types used to look up reference
// items.
type Taxonomy struct {
	Categories     []string
	ApplianceTypes []string
	FoodTypes      []string
	TransportTypes []string
}

// ItemTypes returns the item-type list for a category
func (t Taxonomy) ItemTypes(k Kind) []string {
	switch k {
	case KindAppliance:
		return t.ApplianceTypes
	case KindFood:
		return t.FoodTypes
	case KindTransport:
		return t.TransportTypes
	}
	return nil
}

// HasCategory reports whether label is a category, ignoring case
func (t Taxonomy) HasCategory(label string) bool {
	for _, c := range t.Categories {
		if strings.EqualFold(c, label) {
			return true
		}
	}
	return false
}

// State is the item form selection state. The zero value is not valid;
// use InitialState.
type State struct {
	Mode             Mode
	SelectedCategory string
}

// InitialState is category mode with nothing selected
func InitialState() State {
	return State{Mode: ModeCategory}
}

// EventKind identifies what the user activated
type EventKind int

const (
	// EventSelect is a labeled button activation
	EventSelect EventKind = iota
	// EventBack is the "Back to Categories" control
	EventBack
)

// Event is one user activation in the selection column
type Event struct {
	Kind  EventKind
	Label string
}

// SelectEvent builds a select event for label
func SelectEvent(label string) Event {
	return Event{Kind: EventSelect, Label: label}
}

// BackEvent builds a back event
func BackEvent() Event {
	return Event{Kind: EventBack, Label: BackLabel}
}

// EffectKind tells the caller what to render after a transition
type EffectKind int

const (
	// EffectNone means the event was ignored
	EffectNone EffectKind = iota
	// EffectShowItemTypes re-renders the column with the item types of Effect.Category
	EffectShowItemTypes
	// EffectShowCategories re-renders the top-level categories and clears the form
	EffectShowCategories
	// EffectLoadItems fetches reference items for Effect.ItemType
	EffectLoadItems
)

// Effect is the side effect a transition asks for
type Effect struct {
	Kind     EffectKind
	Category Kind
	ItemType string
}

// Transition applies e to s. It never fails: events that do not fit the
// current mode leave the state unchanged and return EffectNone.
func Transition(s State, t Taxonomy, e Event) (State, Effect) {
	switch e.Kind {
	case EventBack:
		if s.Mode == ModeCategory {
			return s, Effect{}
		}
		return InitialState(), Effect{Kind: EffectShowCategories}

	case EventSelect:
		if s.Mode == ModeCategory {
			if !t.HasCategory(e.Label) {
				return s, Effect{}
			}
			kind, ok := ParseKind(e.Label)
			if !ok {
				return s, Effect{}
			}
			return State{Mode: ModeFor(kind), SelectedCategory: e.Label},
				Effect{Kind: EffectShowItemTypes, Category: kind}
		}

		kind, ok := s.Mode.Kind()
		if !ok || !slices.Contains(t.ItemTypes(kind), e.Label) {
			return s, Effect{}
		}
		return s, Effect{Kind: EffectLoadItems, Category: kind, ItemType: e.Label}
	}

	return s, Effect{}
}

// Heading returns the two lines shown above the form: the selection title
// and the instruction line. itemType is empty until an item type is chosen.
func Heading(itemType string) (title, details string) {
	if itemType == "" {
		return "Categories", "Please select a category from the left to add a new item."
	}
	return "You selected: " + itemType, "Please complete the following:"
}
