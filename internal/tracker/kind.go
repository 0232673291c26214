package tracker

import "strings"

// Kind is a loggable activity category. Its value is the path segment used
// by the tracker API (/api/items/{kind}/..., /api/log-{kind}).
type Kind string

const (
	KindAppliance Kind = "appliance"
	KindFood      Kind = "food"
	KindTransport Kind = "transport"
)

// Kinds lists every loggable category in display order
var Kinds = []Kind{KindAppliance, KindFood, KindTransport}

// ParseKind matches s case-insensitively against the known kinds
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "appliance":
		return KindAppliance, true
	case "food":
		return KindFood, true
	case "transport":
		return KindTransport, true
	}
	return "", false
}

// Label is the display name ("Appliance", "Food", "Transport")
func (k Kind) Label() string {
	switch k {
	case KindAppliance:
		return "Appliance"
	case KindFood:
		return "Food"
	case KindTransport:
		return "Transport"
	}
	return string(k)
}

// QuantityField is the name of the one numeric field a log entry carries
func (k Kind) QuantityField() string {
	switch k {
	case KindAppliance:
		return FieldUsageTime
	case KindTransport:
		return FieldDistance
	default:
		return FieldQuantity
	}
}

// noun is used in the empty and failed load notices
func (k Kind) noun() string {
	switch k {
	case KindAppliance:
		return "appliances"
	case KindTransport:
		return "transport options"
	default:
		return "food items"
	}
}
