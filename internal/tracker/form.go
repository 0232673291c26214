package tracker

import (
	"fmt"
	"time"
)

// ReferenceItem is one catalog entry returned by the tracker. Coefficient is
// wattage for appliances, CO2e per mile for transport and CO2e per kg for
// food. HasCoefficient is false when the server sent null.
type ReferenceItem struct {
	Name           string
	FuelType       string
	Coefficient    float64
	HasCoefficient bool
}

// Option is one entry of the item select control
type Option struct {
	Value          string
	Label          string
	Coefficient    float64
	HasCoefficient bool
}

// OptionFor builds the select option for an item. Transport labels carry
// the fuel type.
func OptionFor(kind Kind, item ReferenceItem) Option {
	label := item.Name
	if kind == KindTransport {
		label = fmt.Sprintf("%s (%s)", item.Name, item.FuelType)
	}
	return Option{
		Value:          item.Name,
		Label:          label,
		Coefficient:    item.Coefficient,
		HasCoefficient: item.HasCoefficient,
	}
}

// NotFoundNotice is shown instead of the form when a lookup returns nothing
func NotFoundNotice(kind Kind) string {
	return fmt.Sprintf("No %s found for this category.", kind.noun())
}

// LoadErrorNotice is shown instead of the form when a lookup fails
func LoadErrorNotice(kind Kind) string {
	return fmt.Sprintf("Error loading %s. Please try again.", kind.noun())
}

// Form is the dynamic item form for one item type. When Notice is set the
// form has no select control and no fields.
type Form struct {
	Kind     Kind
	ItemType string
	Options  []Option
	Selected int
	Fields   []FieldSpec
	Notice   string
}

// NewForm builds the form for fetched items. The first option is selected
// and its fields are generated immediately.
func NewForm(kind Kind, itemType string, items []ReferenceItem, now time.Time) Form {
	f := Form{Kind: kind, ItemType: itemType}
	if len(items) == 0 {
		f.Notice = NotFoundNotice(kind)
		return f
	}

	f.Options = make([]Option, len(items))
	for i, item := range items {
		f.Options[i] = OptionFor(kind, item)
	}
	return f.Select(0, now)
}

// ErrorForm is the form shown after a failed lookup
func ErrorForm(kind Kind, itemType string) Form {
	return Form{Kind: kind, ItemType: itemType, Notice: LoadErrorNotice(kind)}
}

// HasSelect reports whether the select control is shown
func (f Form) HasSelect() bool {
	return f.Notice == "" && len(f.Options) > 0
}

// Select changes the selected option and regenerates every field, even when
// i is already selected.
func (f Form) Select(i int, now time.Time) Form {
	if !f.HasSelect() || i < 0 || i >= len(f.Options) {
		return f
	}
	f.Selected = i
	f.Fields = FieldsFor(f.Kind, f.Options[i], now)
	return f
}

// SelectedOption returns the current option
func (f Form) SelectedOption() (Option, bool) {
	if !f.HasSelect() || f.Selected < 0 || f.Selected >= len(f.Options) {
		return Option{}, false
	}
	return f.Options[f.Selected], true
}

// Value returns the current value of a field
func (f Form) Value(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// SetValue updates an editable field. Read-only and unknown fields are
// left alone.
func (f Form) SetValue(name, value string) Form {
	fields := make([]FieldSpec, len(f.Fields))
	copy(fields, f.Fields)
	for i := range fields {
		if fields[i].Name == name && !fields[i].ReadOnly {
			fields[i].Value = value
		}
	}
	f.Fields = fields
	return f
}
