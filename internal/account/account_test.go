package account

import (
	"errors"
	"testing"

	"github.com/carbonlog/carbon/internal/tracker"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Credentials
		wantErr bool
	}{
		{"valid", Credentials{"alice", "pw"}, false},
		{"trimmed", Credentials{"  alice ", " pw "}, false},
		{"blank password", Credentials{"alice", "   "}, true},
		{"missing username", Credentials{"", "pw"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Error() != MsgLoginMissing {
				t.Errorf("Validate() error = %q", err)
			}
			if err == nil && got.Username != "alice" {
				t.Errorf("Username = %q, want trimmed alice", got.Username)
			}
		})
	}
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Registration
		wantErr string
	}{
		{"valid", Registration{"bob", "b@x.io", "pw", "pw"}, ""},
		{"missing email", Registration{"bob", "", "pw", "pw"}, MsgRegisterMissing},
		{"mismatch", Registration{"bob", "b@x.io", "pw", "pw2"}, MsgPasswordMismatch},
		{"mismatch after trim still matches", Registration{"bob", "b@x.io", "pw ", " pw"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Validate()
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestResetRequest_Validate(t *testing.T) {
	if _, err := (ResetRequest{Username: "bob"}).Validate(); err == nil || err.Error() != MsgForgotMissing {
		t.Errorf("Validate() error = %v, want %q", err, MsgForgotMissing)
	}
	if _, err := (ResetRequest{Username: "bob", Email: "b@x.io"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestOutcomes(t *testing.T) {
	netErr := errors.New("dial tcp: refused")

	tests := []struct {
		name string
		got  Outcome
		want Outcome
	}{
		{"login ok", LoginOutcome(true, "Login successful!", nil), Outcome{MsgLoginSuccess, tracker.SeveritySuccess, true}},
		{"login rejected", LoginOutcome(false, "Invalid username or password", nil), Outcome{"Invalid username or password", tracker.SeverityDanger, false}},
		{"login transport", LoginOutcome(false, "", netErr), Outcome{MsgLoginFailed, tracker.SeverityDanger, false}},
		{"register ok", RegisterOutcome(true, "", nil), Outcome{MsgRegisterSuccess, tracker.SeveritySuccess, true}},
		{"register transport", RegisterOutcome(false, "", netErr), Outcome{MsgRegisterFailed, tracker.SeverityDanger, false}},
		{"forgot ok", ForgotOutcome(true, "If the details are correct, a password reset link will be sent.", nil), Outcome{"If the details are correct, a password reset link will be sent.", tracker.SeveritySuccess, false}},
		{"forgot rejected", ForgotOutcome(false, "No such user found.", nil), Outcome{"No such user found.", tracker.SeverityDanger, false}},
		{"forgot transport", ForgotOutcome(false, "", netErr), Outcome{MsgForgotFailed, tracker.SeverityDanger, false}},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}
