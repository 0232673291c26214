package tracker

import (
	"strconv"
	"time"
)

// Field names double as the JSON keys of the log payload
const (
	FieldUsageTime = "usageTime"
	FieldWattage   = "wattage"
	FieldDistance  = "distance"
	FieldQuantity  = "quantity"
	FieldLogTime   = "logTime"
)

// TimestampLayout is the local date-time format of the logTime field
const TimestampLayout = "2006-01-02 15:04:05"

// FieldType is how a field is edited
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
	FieldTypeText   FieldType = "text"
)

// FieldSpec describes one input of the item form independently of how it is
// painted.
type FieldSpec struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Value       string
	ReadOnly    bool
	Min         float64
	HasMin      bool
	Step        float64
}

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FieldsFor maps a selected option to the inputs shown for it. The
// quantity input always starts empty and logTime is stamped with now.
func FieldsFor(kind Kind, opt Option, now time.Time) []FieldSpec {
	logTime := FieldSpec{
		Name:     FieldLogTime,
		Label:    "Log Time (DateTime)",
		Type:     FieldTypeText,
		Value:    FormatTimestamp(now),
		ReadOnly: true,
	}

	switch kind {
	case KindAppliance:
		// A zero wattage is treated as unknown and left for the user
		wattage := ""
		if opt.HasCoefficient && opt.Coefficient != 0 {
			wattage = formatNumber(opt.Coefficient)
		}
		return []FieldSpec{
			{
				Name:        FieldUsageTime,
				Label:       "Length of Time Used (hours)",
				Type:        FieldTypeNumber,
				Placeholder: "Enter hours used",
				Min:         0,
				HasMin:      true,
				Step:        0.1,
			},
			{
				Name:  FieldWattage,
				Label: "Wattage (kWh)",
				Type:  FieldTypeNumber,
				Value: wattage,
				Step:  0.01,
			},
			logTime,
		}

	case KindTransport:
		return []FieldSpec{
			{
				Name:        FieldDistance,
				Label:       "Distance Travelled (miles)",
				Type:        FieldTypeNumber,
				Placeholder: "Enter distance",
				Min:         0,
				HasMin:      true,
				Step:        0.1,
			},
			logTime,
		}

	case KindFood:
		return []FieldSpec{
			{
				Name:        FieldQuantity,
				Label:       "Quantity (kg unless otherwise stated)",
				Type:        FieldTypeNumber,
				Placeholder: "Enter quantity",
				Min:         0,
				HasMin:      true,
				Step:        0.1,
			},
			logTime,
		}
	}

	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
