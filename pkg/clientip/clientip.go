// Package clientip resolves the address of the caller for request logs.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the caller's IP. Forwarding headers are honored only
// when the direct peer is a loopback or private address, i.e. a reverse
// proxy on the same host or network; otherwise r.RemoteAddr wins.
func RealClientIP(r *http.Request) string {
	peer := hostOnly(r.RemoteAddr)
	if !trustedPeer(peer) {
		return peer
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}
	return peer
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return strings.TrimSpace(addr)
	}
	return strings.TrimSpace(host)
}

func trustedPeer(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}
