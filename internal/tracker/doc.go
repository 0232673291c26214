// Package tracker holds the item-logging flow of the carbon client as plain
// values, independent of any terminal or HTTP code.
//
// # Selection
//
// The selection column walks a two-level catalog. In category mode it lists
// the top-level categories; choosing one moves to that category's item-type
// mode, which lists item types followed by a "Back to Categories" control:
//
//	state := tracker.InitialState()
//	state, effect := tracker.Transition(state, taxonomy, tracker.SelectEvent("Appliance"))
//	// effect.Kind == tracker.EffectShowItemTypes
//	state, effect = tracker.Transition(state, taxonomy, tracker.SelectEvent("Kitchen"))
//	// effect.Kind == tracker.EffectLoadItems, effect.ItemType == "Kitchen"
//
// Events that do not fit the current mode return EffectNone and leave the
// state untouched.
//
// # Forms
//
// NewForm turns fetched reference items into a select control plus the
// inputs for the selected item. FieldsFor is the mapping from a selected
// option to its inputs:
//
//	appliance  usageTime (hours), wattage (pre-filled), logTime
//	transport  distance (miles), logTime
//	food       quantity (kg), logTime
//
// logTime is read-only and stamped with the local time whenever the
// selection changes.
//
// # Submission
//
// BuildEntry validates the one quantity field (present and above zero) and
// produces the LogEntry posted by the api package. SuccessMessage and
// FailureMessage give the banner text for the outcome.
//
// # Banners and stale responses
//
// MessageBox keeps a single banner. Each banner carries a sequence number so
// a delayed clear only removes the banner it was scheduled for. Generation
// numbers item lookups so a response that arrives after a newer request, or
// after navigating back, is dropped.
package tracker
