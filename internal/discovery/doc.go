// Package discovery finds carbon tracker servers on the local network via
// mDNS (Bonjour/Avahi).
//
// Servers advertise the "_carbon._tcp" service. TXT records may carry
// "path" (API root below the host), "scheme" (http or https) and "version".
//
//	servers, err := discovery.QuickScan(ctx, 3*time.Second)
//	for _, s := range servers {
//	    fmt.Println(s.Instance, s.BaseURL())
//	}
//
// Discovery needs multicast on the local segment. It will not cross
// routers and typically finds nothing inside containers.
package discovery
