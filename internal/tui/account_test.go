package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/carbonlog/carbon/internal/account"
	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/tracker"
)

// fill types values into the account form fields in order
func fill(t *testing.T, m AppModel, values ...string) AppModel {
	t.Helper()
	for i, v := range values {
		if v != "" {
			m = press(t, m, typeText(v))
		}
		if i < len(values)-1 {
			m = press(t, m, keyTab)
		}
	}
	return m
}

func TestLogin_Validation(t *testing.T) {
	fb := &fakeBackend{}
	m := newTestApp(t, fb, ScreenLogin)

	m = fill(t, m, "alice", "")
	m = press(t, m, keyEnter)

	if len(fb.accountCalls) != 0 {
		t.Errorf("calls = %v, want none", fb.accountCalls)
	}
	wantBanner(t, m, account.MsgLoginMissing, tracker.SeverityDanger)
}

func TestLogin_Success(t *testing.T) {
	fb := &fakeBackend{accountResult: &api.Result{Success: true, Message: "Login successful"}}
	var saved string
	m := NewAppModel(Options{
		Backend:  fb,
		Settings: config.NewSettings(),
		Now:      func() time.Time { return testNow },
		OnLogin: func(username string) error {
			saved = username
			return nil
		},
	})

	m = fill(t, m, "alice", "secret")
	m = press(t, m, keyEnter)

	if len(fb.accountCalls) != 1 || fb.accountCalls[0] != "login:alice" {
		t.Errorf("calls = %v, want [login:alice]", fb.accountCalls)
	}
	if saved != "alice" {
		t.Errorf("OnLogin got %q, want alice", saved)
	}
	wantBanner(t, m, account.MsgLoginSuccess, tracker.SeveritySuccess)
	if m.sh.username != "alice" {
		t.Errorf("username = %q, want alice", m.sh.username)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		result *api.Result
		err    error
		want   string
	}{
		{"rejected", &api.Result{Success: false, Message: "Invalid credentials"}, nil, "Invalid credentials"},
		{"network", nil, errors.New("refused"), account.MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{accountResult: tt.result, accountErr: tt.err}
			m := newTestApp(t, fb, ScreenLogin)

			m = fill(t, m, "alice", "wrong")
			m = press(t, m, keyEnter)

			wantBanner(t, m, tt.want, tracker.SeverityDanger)
			if m.CurrentScreen != ScreenLogin {
				t.Errorf("CurrentScreen = %v, want %v", m.CurrentScreen, ScreenLogin)
			}
			if m.AccountModel.submitting {
				t.Error("still submitting")
			}
		})
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	fb := &fakeBackend{}
	m := newTestApp(t, fb, ScreenLogin)

	m = press(t, m, keyRegister)
	if m.CurrentScreen != ScreenRegister {
		t.Fatalf("CurrentScreen = %v, want %v", m.CurrentScreen, ScreenRegister)
	}

	m = fill(t, m, "bob", "bob@example.com", "one", "two")
	m = press(t, m, keyEnter)

	if len(fb.accountCalls) != 0 {
		t.Errorf("calls = %v, want none", fb.accountCalls)
	}
	wantBanner(t, m, account.MsgPasswordMismatch, tracker.SeverityDanger)
}

func TestRegister_Success(t *testing.T) {
	fb := &fakeBackend{accountResult: &api.Result{Success: true}}
	m := newTestApp(t, fb, ScreenRegister)

	m = fill(t, m, "bob", "bob@example.com", "pw", "pw")
	m = press(t, m, keyEnter)

	if len(fb.accountCalls) != 1 || fb.accountCalls[0] != "register:bob" {
		t.Errorf("calls = %v, want [register:bob]", fb.accountCalls)
	}
	wantBanner(t, m, account.MsgRegisterSuccess, tracker.SeveritySuccess)
}

func TestForgot_ShowsServerMessage(t *testing.T) {
	fb := &fakeBackend{accountResult: &api.Result{Success: true, Message: "Reset link sent"}}
	m := newTestApp(t, fb, ScreenForgot)

	m = fill(t, m, "bob", "bob@example.com")
	m = press(t, m, keyEnter)

	wantBanner(t, m, "Reset link sent", tracker.SeveritySuccess)

	m = press(t, m, keyEsc)
	if m.CurrentScreen != ScreenLogin {
		t.Errorf("CurrentScreen = %v, want %v", m.CurrentScreen, ScreenLogin)
	}
}
