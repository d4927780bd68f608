package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether a browser Origin matches one of the
// configured site patterns. Patterns compare against the host[:port]
// portion only, so "meridian.org" admits both http and https origins;
// "*.meridian.org" admits any subdomain and "localhost:*" any port.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		if matchHostPattern(pattern, host) {
			return true
		}
	}
	return false
}

func matchHostPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
