package http

import (
	"net"
	"net/http"
	"strings"
	"sync/atomic"
)

// securityMetrics tracks counters exposed on /metricsz.
type securityMetrics struct {
	rateLimitHits      int64
	requestsBlocked    int64
	suspiciousRequests int64
}

func (m *securityMetrics) recordRateLimitHit() { atomic.AddInt64(&m.rateLimitHits, 1) }
func (m *securityMetrics) recordBlocked()      { atomic.AddInt64(&m.requestsBlocked, 1) }
func (m *securityMetrics) recordSuspicious()   { atomic.AddInt64(&m.suspiciousRequests, 1) }

func (m *securityMetrics) snapshot() (hits, blocked, suspicious int64) {
	return atomic.LoadInt64(&m.rateLimitHits),
		atomic.LoadInt64(&m.requestsBlocked),
		atomic.LoadInt64(&m.suspiciousRequests)
}

// suspiciousPathPatterns are probe signatures that never appear in
// legitimate tracker traffic.
var suspiciousPathPatterns = []string{
	"../", "..\\", ".env", "wp-admin", "phpmyadmin",
	"admin.php", "config.php", ".git", ".ssh",
	"eval(", "javascript:", "<script", "union select",
	"etc/passwd", "cmd.exe",
}

var suspiciousAgents = []string{
	"sqlmap", "nmap", "nikto", "gobuster", "dirb",
	"python-requests", "scanner", "crawler", "spider", "scraper",
}

// detectSuspiciousRequest flags requests that look like scanner or probe
// traffic. Flagged requests are counted and logged, not blocked.
func detectSuspiciousRequest(r *http.Request) bool {
	path := strings.ToLower(r.URL.Path)
	query := strings.ToLower(r.URL.RawQuery)
	for _, pattern := range suspiciousPathPatterns {
		if strings.Contains(path, pattern) || strings.Contains(query, pattern) {
			return true
		}
	}

	userAgent := strings.ToLower(r.Header.Get("User-Agent"))
	for _, agent := range suspiciousAgents {
		if strings.Contains(userAgent, agent) {
			return true
		}
	}

	switch r.Method {
	case "TRACE", "TRACK", "DEBUG", "CONNECT":
		return true
	}

	if len(r.URL.String()) > 2048 {
		return true
	}

	// An X-Forwarded-For chain this long is header stuffing, not routing.
	if strings.Count(r.Header.Get("X-Forwarded-For"), ",") > 5 {
		return true
	}

	return false
}

// trustedProxyNets are the private ranges a reverse proxy is expected to
// live in. Forwarding headers are only honored when the peer is one of
// these.
var trustedProxyNets = func() []*net.IPNet {
	cidrs := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "127.0.0.0/8", "::1/128"}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		if _, n, err := net.ParseCIDR(c); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}()

func isTrustedProxy(ip net.IP) bool {
	for _, n := range trustedProxyNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// extractClientIP returns the originating client address, honoring
// X-Forwarded-For and X-Real-IP only when the direct peer is a trusted
// proxy.
func extractClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)
	if peer == nil || !isTrustedProxy(peer) {
		return host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First address is the original client
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return first
		}
	}
	if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
		if ip := net.ParseIP(xr); ip != nil {
			return xr
		}
	}
	return host
}
