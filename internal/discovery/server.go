package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Server is a carbon tracker found on the local network
type Server struct {
	// Instance is the advertised service instance name (e.g., "Home tracker")
	Instance string

	// Hostname is the mDNS hostname (e.g., "pi.local.")
	Hostname string

	// IP is the address to connect to, IPv4 preferred
	IP string

	// Port is the HTTP port
	Port int

	// Scheme is "http" unless the TXT record says otherwise
	Scheme string

	// Path is the API root below the host, usually empty
	Path string

	// Metadata contains the raw TXT record data
	// Common fields: "path=/", "version=1.2.0", "scheme=https"
	Metadata map[string]string

	// DiscoveredAt is when the server answered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, strings.TrimSuffix(s.Hostname, "."), s.BaseURL())
}

// BaseURL returns the tracker root suitable for server.url
func (s *Server) BaseURL() string {
	scheme := s.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
	return scheme + "://" + host + strings.TrimRight(s.Path, "/")
}

// Version returns the advertised server version, if any
func (s *Server) Version() string {
	return s.GetMetadata("version")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
