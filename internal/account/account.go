// Package account validates the login, registration and password reset
// forms and words their outcomes. Requests themselves go through the api
// package.
package account

import (
	"errors"
	"strings"
	"time"

	"github.com/carbonlog/carbon/internal/tracker"
)

// RedirectDelay is how long a success banner shows before moving on
const RedirectDelay = 1500 * time.Millisecond

// Form banner texts
const (
	MsgLoginMissing     = "Please enter both username and password."
	MsgLoginSuccess     = "Login successful! Redirecting..."
	MsgLoginFailed      = "An error occurred. Please try again."
	MsgRegisterMissing  = "All fields are required."
	MsgPasswordMismatch = "Passwords do not match."
	MsgRegisterSuccess  = "Registration successful! Redirecting to login..."
	MsgRegisterFailed   = "An error occurred, please try again."
	MsgForgotMissing    = "Username and email are required."
	MsgForgotFailed     = "An error occurred. Please try again later."
)

// Credentials is the login form
type Credentials struct {
	Username string
	Password string
}

// Registration is the sign-up form
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ResetRequest is the forgotten password form
type ResetRequest struct {
	Username string
	Email    string
}

// Validate trims both fields and requires them
func (c Credentials) Validate() (Credentials, error) {
	c.Username = strings.TrimSpace(c.Username)
	c.Password = strings.TrimSpace(c.Password)
	if c.Username == "" || c.Password == "" {
		return c, errors.New(MsgLoginMissing)
	}
	return c, nil
}

// Validate trims every field, requires all of them and checks the passwords match
func (r Registration) Validate() (Registration, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)

	if r.Username == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return r, errors.New(MsgRegisterMissing)
	}
	if r.Password != r.ConfirmPassword {
		return r, errors.New(MsgPasswordMismatch)
	}
	return r, nil
}

// Validate trims both fields and requires them
func (r ResetRequest) Validate() (ResetRequest, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" {
		return r, errors.New(MsgForgotMissing)
	}
	return r, nil
}

// Outcome is the banner shown after an account request
type Outcome struct {
	Text     string
	Severity tracker.Severity
	// Redirect is set when the screen should move on after RedirectDelay
	Redirect bool
}

// LoginOutcome words the login response. err is a transport failure.
func LoginOutcome(success bool, message string, err error) Outcome {
	switch {
	case err != nil:
		return Outcome{Text: MsgLoginFailed, Severity: tracker.SeverityDanger}
	case success:
		return Outcome{Text: MsgLoginSuccess, Severity: tracker.SeveritySuccess, Redirect: true}
	default:
		return Outcome{Text: message, Severity: tracker.SeverityDanger}
	}
}

// RegisterOutcome words the registration response
func RegisterOutcome(success bool, message string, err error) Outcome {
	switch {
	case err != nil:
		return Outcome{Text: MsgRegisterFailed, Severity: tracker.SeverityDanger}
	case success:
		return Outcome{Text: MsgRegisterSuccess, Severity: tracker.SeveritySuccess, Redirect: true}
	default:
		return Outcome{Text: message, Severity: tracker.SeverityDanger}
	}
}

// ForgotOutcome words the password reset response. The server message is
// shown either way.
func ForgotOutcome(success bool, message string, err error) Outcome {
	switch {
	case err != nil:
		return Outcome{Text: MsgForgotFailed, Severity: tracker.SeverityDanger}
	case success:
		return Outcome{Text: message, Severity: tracker.SeveritySuccess}
	default:
		return Outcome{Text: message, Severity: tracker.SeverityDanger}
	}
}
