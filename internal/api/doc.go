// Package api is the HTTP client for the carbon tracker's JSON API.
//
// # Endpoints
//
//	GET  /api/items/{kind}/{itemType}   reference items for an item type
//	POST /api/log-{kind}                record one usage entry
//	POST /api/login                     start a session (cookie)
//	POST /api/register                  create an account
//	POST /api/forgot-password           start a password reset
//	GET  /api/activity-data             daily breakdown for a date range
//
// Write endpoints answer with a {success, message} envelope, returned as a
// *Result. A Result with Success false is the server rejecting the request
// and is not an error. Errors are reserved for transport, HTTP and parse
// failures and are always *Error values:
//
//	result, err := client.SubmitLog(ctx, entry)
//	switch {
//	case err != nil:
//	    fmt.Println(api.ShortMessage(err))
//	case !result.Success:
//	    fmt.Println("Error: " + result.Message)
//	}
//
// # Sessions
//
// The tracker authenticates with a session cookie. Client keeps it in a
// cookie jar; Cookies and SetCookies move it in and out so a login can be
// persisted between runs.
//
// Every request carries an X-Request-ID header which also appears in the
// debug log. Requests are never retried.
package api
