package grpcclient

import (
	"strings"
)

const (
	defaultPort       = "8080"
	defaultSecurePort = "443"
	securePortToken   = "443"
)

// ResolveAddress derives the gRPC host:port and the transport security
// mode from a configured ChirpStack url: the scheme prefix and any
// trailing slash are stripped, and a default port is appended when the
// address carries none (443 for an https url, 8080 otherwise).
//
// TLS is selected when the resulting host:port contains "443" anywhere
// in the string, or when the url scheme is https. This is a substring
// heuristic, not port parsing: a hostname that happens to contain 443
// also selects TLS. Known defect, kept for compatibility with existing
// deployments; the fix is to compare the parsed port instead.
func ResolveAddress(rawURL string) (string, bool) {
	secureScheme := strings.HasPrefix(rawURL, "https")

	server := rawURL
	if i := strings.Index(server, "://"); i != -1 {
		server = server[i+3:]
	}
	server = strings.TrimRight(server, "/")
	if !strings.Contains(server, ":") {
		if secureScheme {
			server = server + ":" + defaultSecurePort
		} else {
			server = server + ":" + defaultPort
		}
	}

	useTLS := strings.Contains(server, securePortToken) || secureScheme

	return server, useTLS
}
