package api

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "dns",
			err:  &net.DNSError{Name: "tracker.invalid", Err: "no such host"},
			want: ErrTypeDNS,
		},
		{
			name: "refused",
			err:  &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			want: ErrTypeConnectionRefused,
		},
		{
			name: "generic",
			err:  errors.New("connection reset"),
			want: ErrTypeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err, "/api/login")
			if got.Type != tt.want {
				t.Errorf("ClassifyNetworkError() type = %v, want %v", got.Type, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error does not wrap the cause")
			}
		})
	}

	if ClassifyNetworkError(nil, "") != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestErrorHelpers(t *testing.T) {
	auth := NewAuthError("/api/items/food/Meat", "")
	if !IsAuthError(auth) || auth.Message != "Authentication required" {
		t.Errorf("NewAuthError() = %+v", auth)
	}

	wrapped := fmt.Errorf("loading items: %w", NewHTTPError("/x", 500, ""))
	if !IsHTTPError(wrapped) {
		t.Error("IsHTTPError() should see through wrapping")
	}
	if IsNetworkError(wrapped) {
		t.Error("HTTP error reported as network error")
	}
	if !strings.Contains(ShortMessage(wrapped), "HTTP 500") {
		t.Errorf("ShortMessage() = %q", ShortMessage(wrapped))
	}
	if !strings.Contains(Hint(wrapped), "internal error") {
		t.Errorf("Hint() = %q", Hint(wrapped))
	}

	plain := errors.New("plain")
	if ShortMessage(plain) != "plain" {
		t.Errorf("ShortMessage(plain) = %q", ShortMessage(plain))
	}
}

func TestErrorType_String(t *testing.T) {
	if ErrTypeTimeout.String() != "Timeout" {
		t.Errorf("String() = %q", ErrTypeTimeout.String())
	}
	if got := ErrorType(99).String(); got != "ErrorType(99)" {
		t.Errorf("String() = %q", got)
	}
}
