// Package activity handles the daily emissions breakdown returned by
// /api/activity-data: range checks before the request, shape checks on the
// response, a stacked bar rendering for the terminal and CSV export.
//
// The response is a set of parallel arrays, one value per date:
//
//	{"dates": ["2024-03-01", "2024-03-02"],
//	 "Appliance": [1.2, 0], "Food": [3.4, 2.1], "Transport": [0, 5.5]}
//
// Data.Validate rejects arrays whose lengths disagree, so a rendered chart
// always has one stacked bar per date.
package activity
