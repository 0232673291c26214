package tracker

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern is the plain decimal form a number input accepts. Go
// literal forms such as "1_000" or "0x10" are not numbers here.
var decimalPattern = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseDecimal parses a trimmed plain decimal
func parseDecimal(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if !decimalPattern.MatchString(raw) {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SubmitErrorMessage is shown when a submission fails below the API level
const SubmitErrorMessage = "An error occurred while submitting."

// ValidationError is a client-side check that blocks a submission
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationMessage is the banner text for an invalid quantity
func ValidationMessage(kind Kind) string {
	switch kind {
	case KindAppliance:
		return "Please enter a valid usage time."
	case KindTransport:
		return "Please enter a valid distance."
	default:
		return "Please enter a valid quantity."
	}
}

// SuccessMessage is the banner text after the tracker accepts an entry
func SuccessMessage(kind Kind) string {
	switch kind {
	case KindAppliance:
		return "Appliance usage logged successfully!"
	case KindTransport:
		return "Transport logged successfully!"
	default:
		return "Food logged successfully!"
	}
}

// FailureMessage is the banner text when the tracker rejects an entry
func FailureMessage(serverMessage string) string {
	return "Error: " + serverMessage
}

// ParseQuantity accepts only a present, plain decimal strictly above zero
func ParseQuantity(kind Kind, raw string) (float64, error) {
	invalid := &ValidationError{Field: kind.QuantityField(), Message: ValidationMessage(kind)}

	v, ok := parseDecimal(raw)
	if !ok || v <= 0 {
		return 0, invalid
	}
	return v, nil
}

// LogEntry is the payload for one usage event. Exactly one quantity applies,
// chosen by Kind. Coefficient is only sent for appliances.
type LogEntry struct {
	Kind           Kind
	UserID         string
	ItemName       string
	Quantity       float64
	Coefficient    float64
	HasCoefficient bool
	LogTime        string
}

// BuildEntry validates the form and builds the entry to submit
func BuildEntry(userID string, f Form) (LogEntry, error) {
	opt, ok := f.SelectedOption()
	if !ok {
		return LogEntry{}, fmt.Errorf("no %s selected", strings.ToLower(f.Kind.Label()))
	}

	qty, err := ParseQuantity(f.Kind, f.Value(f.Kind.QuantityField()))
	if err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Kind:     f.Kind,
		UserID:   userID,
		ItemName: opt.Value,
		Quantity: qty,
		LogTime:  f.Value(FieldLogTime),
	}

	if f.Kind == KindAppliance {
		if w, ok := parseDecimal(f.Value(FieldWattage)); ok {
			entry.Coefficient = w
			entry.HasCoefficient = true
		}
	}

	return entry, nil
}
