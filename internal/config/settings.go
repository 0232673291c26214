package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carbonlog/carbon/internal/tracker"
)

const (
	appName      = "carbon"
	settingsFile = "config.yaml"

	// CurrentVersion is the settings file format version
	CurrentVersion = 1

	// DefaultServerURL is where the tracker API is expected when nothing is configured
	DefaultServerURL = "http://127.0.0.1:5000"

	// DefaultTimeoutSeconds bounds every API request
	DefaultTimeoutSeconds = 10
)

// Environment variables that override the settings file
const (
	ServerURLEnvVar = "CARBON_API_URL"
	UserIDEnvVar    = "CARBON_USER_ID"
)

// Mutex for file operations
var fileMutex sync.Mutex

// Settings is the client configuration file.
type Settings struct {
	Version  int              `yaml:"version"`
	Server   ServerSettings   `yaml:"server"`
	UserID   string           `yaml:"user_id,omitempty"` // Identifier sent in every log payload
	Taxonomy TaxonomySettings `yaml:"taxonomy"`
	Banners  BannerSettings   `yaml:"banners"`
}

// ServerSettings locates the tracker API
type ServerSettings struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// TaxonomySettings holds the category and item-type lists the item form offers.
type TaxonomySettings struct {
	Categories     []string `yaml:"categories"`
	ApplianceTypes []string `yaml:"appliance_types"`
	FoodTypes      []string `yaml:"food_types"`
	TransportTypes []string `yaml:"transport_types"`
}

// BannerSettings sets how long status banners stay visible, in milliseconds.
type BannerSettings struct {
	ItemFormMillis int `yaml:"item_form_ms"`
	ChartMillis    int `yaml:"chart_ms"`
}

// NewSettings returns settings populated with defaults.
func NewSettings() *Settings {
	return &Settings{
		Version: CurrentVersion,
		Server: ServerSettings{
			URL:            DefaultServerURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Taxonomy: TaxonomySettings{
			Categories:     []string{"Appliance", "Food", "Transport"},
			ApplianceTypes: []string{"Entertainment", "Heating", "Kitchen", "Laundry", "Lighting"},
			FoodTypes:      []string{"Dairy", "Fruit", "Grains", "Meat", "Vegetables"},
			TransportTypes: []string{"Personal", "Public"},
		},
		Banners: BannerSettings{
			ItemFormMillis: 3000,
			ChartMillis:    4000,
		},
	}
}

// Catalog converts the settings lists into the selection catalog.
func (s *Settings) Catalog() tracker.Taxonomy {
	return tracker.Taxonomy{
		Categories:     append([]string(nil), s.Taxonomy.Categories...),
		ApplianceTypes: append([]string(nil), s.Taxonomy.ApplianceTypes...),
		FoodTypes:      append([]string(nil), s.Taxonomy.FoodTypes...),
		TransportTypes: append([]string(nil), s.Taxonomy.TransportTypes...),
	}
}

// Timeout returns the per-request timeout
func (s *Settings) Timeout() time.Duration {
	if s.Server.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.Server.TimeoutSeconds) * time.Second
}

// ItemFormBannerDelay is how long item form banners stay visible
func (s *Settings) ItemFormBannerDelay() time.Duration {
	return millisOr(s.Banners.ItemFormMillis, 3000)
}

// ChartBannerDelay is how long chart banners stay visible
func (s *Settings) ChartBannerDelay() time.Duration {
	return millisOr(s.Banners.ChartMillis, 4000)
}

func millisOr(ms, fallback int) time.Duration {
	if ms <= 0 {
		ms = fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate checks the settings are usable
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}
	u, err := url.Parse(s.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", s.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server url %q: scheme must be http or https", s.Server.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server url %q: missing host", s.Server.URL)
	}
	if len(s.Taxonomy.Categories) == 0 {
		return fmt.Errorf("taxonomy has no categories")
	}
	return nil
}

// applyDefaults fills fields a hand-edited file may have left empty
func (s *Settings) applyDefaults() {
	def := NewSettings()
	if s.Server.URL == "" {
		s.Server.URL = def.Server.URL
	}
	if s.Server.TimeoutSeconds == 0 {
		s.Server.TimeoutSeconds = def.Server.TimeoutSeconds
	}
	if len(s.Taxonomy.Categories) == 0 {
		s.Taxonomy.Categories = def.Taxonomy.Categories
	}
	if s.Taxonomy.ApplianceTypes == nil {
		s.Taxonomy.ApplianceTypes = def.Taxonomy.ApplianceTypes
	}
	if s.Taxonomy.FoodTypes == nil {
		s.Taxonomy.FoodTypes = def.Taxonomy.FoodTypes
	}
	if s.Taxonomy.TransportTypes == nil {
		s.Taxonomy.TransportTypes = def.Taxonomy.TransportTypes
	}
	if s.Banners.ItemFormMillis == 0 {
		s.Banners.ItemFormMillis = def.Banners.ItemFormMillis
	}
	if s.Banners.ChartMillis == 0 {
		s.Banners.ChartMillis = def.Banners.ChartMillis
	}
}

// applyEnv applies environment overrides
func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(ServerURLEnvVar)); v != "" {
		s.Server.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(UserIDEnvVar)); v != "" {
		s.UserID = v
	}
}

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/carbon or $HOME/.config/carbon
//   - macOS: $HOME/.config/carbon
//   - Windows: %LOCALAPPDATA%\carbon
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			baseDir = filepath.Join(xdg, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the settings file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// Load reads settings from path (the default location when empty). A missing
// file yields defaults. Environment overrides are applied last.
func Load(path string) (*Settings, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	fileMutex.Lock()
	data, err := os.ReadFile(path)
	fileMutex.Unlock()

	var settings *Settings
	switch {
	case os.IsNotExist(err):
		settings = NewSettings()
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		settings = &Settings{}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		settings.applyDefaults()
	}

	settings.applyEnv()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to path (the default location when empty) atomically.
func (s *Settings) Save(path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# carbon client configuration
# user_id is sent with every logged activity. Passwords are never stored here.

`)
	return writeAtomic(path, append(header, data...))
}

// writeAtomic writes data to a temp file and renames it over path
func writeAtomic(path string, data []byte) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}

	return nil
}
