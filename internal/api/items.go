package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/carbonlog/carbon/internal/tracker"
)

// referenceItem covers all three item shapes. Coefficients are pointers so
// a null from the server is kept distinct from zero.
type referenceItem struct {
	Name        string   `json:"name"`
	Wattage     *float64 `json:"wattage"`
	FuelType    string   `json:"fuel_type"`
	CO2ePerMile *float64 `json:"co2e_per_mile"`
	CO2ePerKg   *float64 `json:"co2e_per_kg"`
}

func (r referenceItem) toTracker(kind tracker.Kind) tracker.ReferenceItem {
	var coef *float64
	switch kind {
	case tracker.KindAppliance:
		coef = r.Wattage
	case tracker.KindTransport:
		coef = r.CO2ePerMile
	case tracker.KindFood:
		coef = r.CO2ePerKg
	}

	item := tracker.ReferenceItem{Name: r.Name, FuelType: r.FuelType}
	if coef != nil {
		item.Coefficient = *coef
		item.HasCoefficient = true
	}
	return item
}

// ItemsPath returns the lookup path for an item type. The item type is
// escaped as a single path segment.
func ItemsPath(kind tracker.Kind, itemType string) string {
	return fmt.Sprintf("/api/items/%s/%s", kind, url.PathEscape(itemType))
}

// FetchItems retrieves the reference items for one item type
func (c *Client) FetchItems(ctx context.Context, kind tracker.Kind, itemType string) ([]tracker.ReferenceItem, error) {
	var raw []referenceItem
	if err := c.getJSON(ctx, ItemsPath(kind, itemType), nil, &raw); err != nil {
		return nil, err
	}

	items := make([]tracker.ReferenceItem, len(raw))
	for i, r := range raw {
		items[i] = r.toTracker(kind)
	}
	return items, nil
}

// LogPath returns the logging endpoint for a kind
func LogPath(kind tracker.Kind) string {
	return "/api/log-" + string(kind)
}

// LogPayload builds the JSON body for an entry
func LogPayload(e tracker.LogEntry) map[string]any {
	body := map[string]any{
		"userID":  userIDValue(e.UserID),
		"logTime": e.LogTime,
	}

	switch e.Kind {
	case tracker.KindAppliance:
		body["applianceName"] = e.ItemName
		body["usageTime"] = e.Quantity
		if e.HasCoefficient {
			body["wattage"] = e.Coefficient
		} else {
			body["wattage"] = nil
		}
	case tracker.KindTransport:
		body["transportName"] = e.ItemName
		body["distance"] = e.Quantity
	case tracker.KindFood:
		body["foodName"] = e.ItemName
		body["quantity"] = e.Quantity
	}
	return body
}

// SubmitLog posts one usage entry
func (c *Client) SubmitLog(ctx context.Context, e tracker.LogEntry) (*Result, error) {
	return c.postResult(ctx, LogPath(e.Kind), LogPayload(e))
}

// userIDValue sends numeric identifiers as JSON numbers
func userIDValue(id string) any {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && !strings.HasPrefix(id, "+") {
		return n
	}
	return id
}
