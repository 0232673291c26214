package api

import (
	"context"
	"net/url"

	"github.com/carbonlog/carbon/internal/activity"
)

// ActivityData retrieves the daily breakdown for an inclusive date range
func (c *Client) ActivityData(ctx context.Context, r activity.Range) (*activity.Data, error) {
	const path = "/api/activity-data"

	var data activity.Data
	query := url.Values{"start": {r.Start}, "end": {r.End}}
	if err := c.getJSON(ctx, path, query, &data); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, NewParseError(path, "inconsistent activity data", err)
	}
	return &data, nil
}
