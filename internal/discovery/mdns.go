package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/logging"
)

const (
	// ServiceType is the mDNS service type tracker servers advertise
	ServiceType = "_carbon._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the tracker's default HTTP port
	DefaultPort = 5000
)

// browseFunc starts an mDNS browse that delivers answers on entries
type browseFunc func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration

	browse browseFunc
}

// zeroconfBrowse browses with a fresh zeroconf resolver on all interfaces
func zeroconfBrowse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}
	if err := resolver.Browse(ctx, service, domain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
		browse:  zeroconfBrowse,
	}
}

// Scan browses for tracker servers until the timeout or ctx ends. Servers
// answering more than once are reported once, sorted by instance name.
func (s *Scanner) Scan(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	browse := s.browse
	if browse == nil {
		browse = zeroconfBrowse
	}

	entries := make(chan *zeroconf.ServiceEntry)
	stop := make(chan struct{})
	done := make(chan struct{})

	var mu sync.Mutex
	found := make(map[string]*Server)

	go func() {
		defer close(done)
		for {
			var entry *zeroconf.ServiceEntry
			select {
			case e, ok := <-entries:
				if !ok {
					return
				}
				entry = e
			case <-stop:
				return
			}

			server := parseServiceEntry(entry)
			if server == nil {
				continue
			}
			logging.Debug("Discovered tracker server",
				zap.String("instance", server.Instance),
				zap.String("url", server.BaseURL()),
			)
			mu.Lock()
			found[server.Instance+"|"+server.BaseURL()] = server
			mu.Unlock()
		}
	}()

	if err := browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		// entries may never be closed after a failed browse
		close(stop)
		<-done
		return nil, err
	}

	<-ctx.Done()

	// The resolver closes entries once it shuts down.
	select {
	case <-done:
	case <-time.After(time.Second):
		close(stop)
		<-done
	}

	mu.Lock()
	defer mu.Unlock()
	return sortServers(found), nil
}

func sortServers(found map[string]*Server) []*Server {
	servers := make([]*Server, 0, len(found))
	for _, server := range found {
		servers = append(servers, server)
	}
	sort.Slice(servers, func(i, j int) bool {
		if servers[i].Instance != servers[j].Instance {
			return servers[i].Instance < servers[j].Instance
		}
		return servers[i].BaseURL() < servers[j].BaseURL()
	})
	return servers
}

// parseServiceEntry converts a zeroconf service entry to a Server.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	scheme := strings.ToLower(metadata["scheme"])
	if scheme != "https" {
		scheme = "http"
	}

	path := metadata["path"]
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Server{
		Instance:     instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Scheme:       scheme,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// QuickScan performs a scan with the given timeout
func QuickScan(ctx context.Context, timeout time.Duration) ([]*Server, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
