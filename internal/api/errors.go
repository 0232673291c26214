package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request deadline passed
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the server URL
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the server host could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates an unexpected status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeAuth indicates the session is missing or expired
	ErrTypeAuth
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeAuth:
		return "Authentication Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a failed exchange with the tracker API
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Path       string    // Request path
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError turns a transport failure into an *Error
func ClassifyNetworkError(err error, path string) *Error {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &Error{Type: ErrTypeTimeout, Message: "Request timed out", Path: path, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Path:    path,
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{Type: ErrTypeConnectionRefused, Message: "Server refused connection", Path: path, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err, path)
	}

	return &Error{Type: ErrTypeNetwork, Message: "Network error occurred", Path: path, Err: err}
}

// NewAuthError creates an authentication error
func NewAuthError(path, message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Type: ErrTypeAuth, Message: message, StatusCode: 401, Path: path}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(path string, statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("unexpected status code: %d", statusCode)
	}
	return &Error{Type: ErrTypeHTTP, Message: message, StatusCode: statusCode, Path: path}
}

// NewParseError creates a parsing error
func NewParseError(path, message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Path: path, Err: err}
}

func asError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused and DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused ||
			apiErr.Type == ErrTypeDNS
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	apiErr, ok := asError(err)
	return ok && apiErr.Type == ErrTypeAuth
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	apiErr, ok := asError(err)
	return ok && apiErr.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	apiErr, ok := asError(err)
	return ok && apiErr.Type == ErrTypeParse
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	apiErr, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Server not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Server refused connection - is the tracker running?"
	case ErrTypeDNS:
		return "Cannot resolve server hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeAuth:
		return "Not logged in - run 'carbon login'"
	case ErrTypeHTTP:
		if apiErr.StatusCode > 0 {
			return fmt.Sprintf("Server error (HTTP %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return apiErr.Message
	case ErrTypeParse:
		return "Failed to parse server response"
	default:
		return apiErr.Message
	}
}

// Hint returns troubleshooting advice for an error
func Hint(err error) string {
	apiErr, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The tracker did not respond in time.",
			"Troubleshooting:",
			"  • Check the server is running",
			"  • Raise server.timeout_seconds in config.yaml",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"Nothing is listening at the configured server URL.",
			"Troubleshooting:",
			"  • Start the tracker server",
			"  • Check the port in server.url or " + "CARBON_API_URL",
			"  • Run 'carbon discover' to find servers on the local network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the server hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeAuth:
		return "Your session is missing or has expired. Run 'carbon login' and try again."

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The tracker returned an internal error (HTTP %d). Check the server log.", apiErr.StatusCode)
		}
		return fmt.Sprintf("The tracker rejected the request (HTTP %d). Check the request parameters.", apiErr.StatusCode)

	case ErrTypeParse:
		return "The response was not the expected JSON. Check server.url points at the tracker API."

	default:
		return "Network communication failed. Check your connection and the server URL."
	}
}
