package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize("", ""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be a no-op when no level is configured")
	}
}

func TestInitialize_LevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	path := t.TempDir() + "/carbon.log"

	if err := Initialize("", path); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer SetLogger(nil)

	if GetLogger().Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestRedact(t *testing.T) {
	payload := map[string]any{
		"username":         "alice",
		"password":         "hunter2",
		"confirm_password": "hunter2",
		"email":            "a@example.com",
	}

	got := Redact(payload)

	if got["username"] != "alice" {
		t.Errorf("username = %v, want alice", got["username"])
	}
	for _, k := range []string{"password", "confirm_password", "email"} {
		if got[k] != "***" {
			t.Errorf("%s = %v, want ***", k, got[k])
		}
	}
	if payload["password"] != "hunter2" {
		t.Error("Redact must not modify its input")
	}
}

func TestLogAPIRequest_RedactsPayload(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogAPIRequest("req-1", "POST", "/api/login", map[string]any{"username": "bob", "password": "secret"})
	LogAPIResponse("req-1", "/api/login", 200, 15*time.Millisecond)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}

	payload, ok := entries[0].ContextMap()["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload field missing or wrong type: %#v", entries[0].ContextMap()["payload"])
	}
	if payload["password"] != "***" {
		t.Errorf("password logged as %v", payload["password"])
	}
	if entries[1].ContextMap()["status_code"] != int64(200) {
		t.Errorf("status_code = %v, want 200", entries[1].ContextMap()["status_code"])
	}
}
