package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/config"
	"github.com/carbonlog/carbon/internal/logging"
)

// useConfigDir points the config directory at a temp dir for the test
func useConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.ServerURLEnvVar, "")
	t.Setenv(config.UserIDEnvVar, "")
	t.Setenv(logging.LogLevelEnvVar, "")
	return filepath.Join(dir, "carbon")
}

// execute runs the root command with args and stdin, resetting every flag
// variable first since cobra keeps them between runs
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	configPath, serverURL, userID, logLevel, logFile = "", "", "", "", ""
	accountUsername, accountEmail = "", ""
	logWattage = ""
	activityStart, activityEnd, activityDays = "", "", 7
	activityCSV, activityCopy = false, false
	discoverTimeout, discoverUse = 5, false
	configForce = false
	settings = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// trackerStub is a minimal tracker server recording the JSON bodies it got
type trackerStub struct {
	*httptest.Server
	bodies map[string]map[string]any
	paths  []string
}

func newTrackerStub(t *testing.T, routes map[string]string) *trackerStub {
	t.Helper()
	stub := &trackerStub{bodies: map[string]map[string]any{}}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.paths = append(stub.paths, r.URL.Path)
		if r.Method == http.MethodPost {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			stub.bodies[r.URL.Path] = body
		}
		if r.URL.Path == "/api/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		}
		resp, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(stub.Close)
	return stub
}

func TestVersionCommand(t *testing.T) {
	useConfigDir(t)
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "carbon ") {
		t.Errorf("output = %q, want carbon prefix", out)
	}
}

func TestConfigInitAndPath(t *testing.T) {
	dir := useConfigDir(t)
	want := filepath.Join(dir, "config.yaml")

	out, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := execute(t, "", "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	if _, err := execute(t, "", "config", "init"); err == nil {
		t.Error("second config init should refuse to overwrite")
	}
	if _, err := execute(t, "", "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestConfigShow_FlagOverrides(t *testing.T) {
	useConfigDir(t)
	out, err := execute(t, "", "--server", "http://tracker.test:8080", "--user-id", "7", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "http://tracker.test:8080") || !strings.Contains(out, "user_id: \"7\"") {
		t.Errorf("config show output missing overrides:\n%s", out)
	}
}

func TestInvalidServerRejected(t *testing.T) {
	useConfigDir(t)
	if _, err := execute(t, "", "--server", "ftp://nope", "config", "show"); err == nil {
		t.Error("ftp server URL should be rejected")
	}
}

func TestLogFood(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{
		"/api/items/food/Dairy": `[{"name":"Cheese","co2e_per_kg":13.5},{"name":"Milk","co2e_per_kg":3.2}]`,
		"/api/log-food":         `{"success":true,"message":"Food logged"}`,
	})

	out, err := execute(t, "", "--server", stub.URL, "--user-id", "42", "log", "food", "Dairy", "cheese", "0.5")
	if err != nil {
		t.Fatalf("log error = %v\n%s", err, out)
	}

	body := stub.bodies["/api/log-food"]
	if body == nil {
		t.Fatal("nothing posted to /api/log-food")
	}
	if body["foodName"] != "Cheese" || body["quantity"] != 0.5 || body["userID"] != float64(42) {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["logTime"].(string); !ok {
		t.Errorf("logTime = %v, want timestamp string", body["logTime"])
	}
	if !strings.Contains(out, "Food logged successfully!") {
		t.Errorf("output missing success message:\n%s", out)
	}
}

func TestLogAppliance_WattageOverride(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{
		"/api/items/appliance/Kitchen": `[{"name":"Kettle","wattage":2.2}]`,
		"/api/log-appliance":           `{"success":true,"message":"ok"}`,
	})

	_, err := execute(t, "", "--server", stub.URL, "log", "appliance", "Kitchen", "Kettle", "0.25", "--wattage", "3")
	if err != nil {
		t.Fatalf("log error = %v", err)
	}

	body := stub.bodies["/api/log-appliance"]
	if body["wattage"] != float64(3) || body["usageTime"] != 0.25 {
		t.Errorf("body = %v, want wattage 3 usageTime 0.25", body)
	}
	if body["userID"] != nil {
		t.Errorf("userID = %v, want null without a configured id", body["userID"])
	}
}

func TestLog_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		routes  map[string]string
		wantOut string
	}{
		{
			name:    "invalid amount",
			args:    []string{"log", "transport", "Personal", "Car", "0"},
			routes:  map[string]string{"/api/items/transport/Personal": `[{"name":"Car","fuel_type":"Petrol","co2e_per_mile":0.3}]`},
			wantOut: "Please enter a valid distance.",
		},
		{
			name: "server rejects",
			args: []string{"log", "transport", "Personal", "Car", "3"},
			routes: map[string]string{
				"/api/items/transport/Personal": `[{"name":"Car","fuel_type":"Petrol","co2e_per_mile":0.3}]`,
				"/api/log-transport":            `{"success":false,"message":"Invalid distance"}`,
			},
			wantOut: "Error: Invalid distance",
		},
		{
			name:    "unknown item",
			args:    []string{"log", "transport", "Personal", "Bike", "3"},
			routes:  map[string]string{"/api/items/transport/Personal": `[{"name":"Car","fuel_type":"Petrol","co2e_per_mile":0.3}]`},
			wantOut: "",
		},
		{
			name:    "no items",
			args:    []string{"log", "food", "Grains", "Rice", "1"},
			routes:  map[string]string{"/api/items/food/Grains": `[]`},
			wantOut: "No food items found for this category.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfigDir(t)
			stub := newTrackerStub(t, tt.routes)

			out, err := execute(t, "", append([]string{"--server", stub.URL}, tt.args...)...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestLoginSavesSession_LogoutClears(t *testing.T) {
	dir := useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{
		"/api/login": `{"success":true,"message":"Login successful"}`,
		"/logout/":   `{}`,
	})

	out, err := execute(t, "secret\n", "--server", stub.URL, "login", "--username", "alice")
	if err != nil {
		t.Fatalf("login error = %v\n%s", err, out)
	}
	if got := stub.bodies["/api/login"]["password"]; got != "secret" {
		t.Errorf("password sent = %v, want secret", got)
	}

	sess, err := config.LoadSession(filepath.Join(dir, "session.yaml"))
	if err != nil || sess == nil {
		t.Fatalf("LoadSession() = %v, %v", sess, err)
	}
	if sess.Username != "alice" || sess.ServerURL != stub.URL || len(sess.Cookies) != 1 {
		t.Errorf("session = %+v", sess)
	}

	if _, err := execute(t, "", "--server", stub.URL, "logout"); err != nil {
		t.Fatalf("logout error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "session.yaml")); !os.IsNotExist(err) {
		t.Error("session file still present after logout")
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{})

	out, err := execute(t, "\n", "--server", stub.URL, "login", "--username", "alice")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "Please enter both username and password.") {
		t.Errorf("output = %q", out)
	}
	if len(stub.bodies) != 0 {
		t.Error("request sent without a password")
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{})

	out, err := execute(t, "one\ntwo\n", "--server", stub.URL, "register", "--username", "bob", "--email", "bob@example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "Passwords do not match.") {
		t.Errorf("output = %q", out)
	}
}

func TestActivity_CSV(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{
		"/api/activity-data": `{"dates":["2024-03-01"],"Appliance":[1],"Food":[2],"Transport":[0.5]}`,
	})

	out, err := execute(t, "", "--server", stub.URL, "activity", "--start", "2024-03-01", "--end", "2024-03-01", "--csv")
	if err != nil {
		t.Fatalf("activity error = %v", err)
	}
	if !strings.HasPrefix(out, "date,Appliance,Food,Transport,total\n2024-03-01,") {
		t.Errorf("csv = %q", out)
	}
}

func TestActivity_MissingDate(t *testing.T) {
	useConfigDir(t)
	out, err := execute(t, "", "activity", "--start", "2024-03-01")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, "Please select both start and end dates.") {
		t.Errorf("output = %q", out)
	}
}

func TestActivity_NoData(t *testing.T) {
	useConfigDir(t)
	stub := newTrackerStub(t, map[string]string{
		"/api/activity-data": `{"dates":[],"Appliance":[],"Food":[],"Transport":[]}`,
	})

	out, err := execute(t, "", "--server", stub.URL, "activity")
	if err != nil {
		t.Fatalf("activity error = %v", err)
	}
	if !strings.Contains(out, "No data found for the selected range.") {
		t.Errorf("output = %q", out)
	}
}

func TestItemTypeOutsideCatalog(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "log", args: []string{"log", "food", "Sweets", "Cake", "1"}},
		{name: "log wrong category list", args: []string{"log", "appliance", "Dairy", "Milk", "1"}},
		{name: "items", args: []string{"items", "transport", "Rocket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfigDir(t)
			stub := newTrackerStub(t, map[string]string{})

			_, err := execute(t, "", append([]string{"--server", stub.URL}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), "item type") {
				t.Fatalf("error = %v, want unknown item type", err)
			}
			if len(stub.paths) != 0 {
				t.Errorf("requests = %v, want none", stub.paths)
			}
		})
	}
}

func TestInitLogging_RootCommandLogsToFile(t *testing.T) {
	dir := useConfigDir(t)
	t.Setenv(logging.LogFileEnvVar, "")
	t.Cleanup(func() {
		logLevel, logFile = "", ""
		logging.SetLogger(zap.NewNop())
	})

	logLevel, logFile = "debug", ""
	if err := initLogging(versionCmd); err != nil {
		t.Fatalf("initLogging(version) error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "carbon.log")); !os.IsNotExist(err) {
		t.Errorf("subcommand created carbon.log (err = %v)", err)
	}

	if err := initLogging(rootCmd); err != nil {
		t.Fatalf("initLogging(root) error = %v", err)
	}
	logging.Info("hello")
	logging.Sync()
	data, err := os.ReadFile(filepath.Join(dir, "carbon.log"))
	if err != nil {
		t.Fatalf("read carbon.log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("carbon.log = %q", data)
	}
}
