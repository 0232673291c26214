package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const sessionFile = "session.yaml"

// Session is the persisted login state: the cookies the tracker issued on
// login, scoped to the server they came from.
type Session struct {
	ServerURL string          `yaml:"server_url"`
	Username  string          `yaml:"username"`
	LoggedIn  time.Time       `yaml:"logged_in"`
	Cookies   []SessionCookie `yaml:"cookies"`
}

// SessionCookie is the subset of http.Cookie worth persisting
type SessionCookie struct {
	Name     string    `yaml:"name"`
	Value    string    `yaml:"value"`
	Path     string    `yaml:"path,omitempty"`
	Domain   string    `yaml:"domain,omitempty"`
	Expires  time.Time `yaml:"expires,omitempty"`
	Secure   bool      `yaml:"secure,omitempty"`
	HttpOnly bool      `yaml:"http_only,omitempty"`
}

// NewSession captures cookies for serverURL
func NewSession(serverURL, username string, cookies []*http.Cookie) *Session {
	s := &Session{
		ServerURL: serverURL,
		Username:  username,
		LoggedIn:  time.Now(),
	}
	for _, c := range cookies {
		s.Cookies = append(s.Cookies, SessionCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return s
}

// HTTPCookies converts the persisted cookies back, skipping expired ones.
func (s *Session) HTTPCookies() []*http.Cookie {
	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		})
	}
	return cookies
}

// GetSessionPath returns the session file path next to the settings file
func GetSessionPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFile), nil
}

// LoadSession reads the session file. It returns (nil, nil) when no session
// has been saved.
func LoadSession(path string) (*Session, error) {
	if path == "" {
		p, err := GetSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	fileMutex.Lock()
	data, err := os.ReadFile(path)
	fileMutex.Unlock()

	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &s, nil
}

// SaveSession writes the session file atomically with user-only permissions
func SaveSession(path string, s *Session) error {
	if path == "" {
		p, err := GetSessionPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return writeAtomic(path, data)
}

// ClearSession removes the session file. A missing file is not an error.
func ClearSession(path string) error {
	if path == "" {
		p, err := GetSessionPath()
		if err != nil {
			return err
		}
		path = p
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
