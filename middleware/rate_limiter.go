package middleware

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SEM24/GRID-Ecommerce-Backend/utils"
)

// IPRateLimiter applies a fixed-window request limit per client IP.
// Client IPs behind a trusted proxy are resolved from X-Forwarded-For.
type IPRateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	windowStart time.Time

	window      time.Duration
	limit       int
	trustedCIDR []string
}

// NewIPRateLimiterFromEnv builds the limiter from RATE_LIMIT_RPM and
// RATE_LIMIT_TRUSTED_PROXIES (comma-separated IPs or CIDRs).
func NewIPRateLimiterFromEnv() *IPRateLimiter {
	limit := 300
	if s := os.Getenv("RATE_LIMIT_RPM"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	var trusted []string
	if s := os.Getenv("RATE_LIMIT_TRUSTED_PROXIES"); s != "" {
		trusted = strings.Split(s, ",")
	}
	return &IPRateLimiter{
		counts:      make(map[string]int),
		windowStart: time.Now(),
		window:      time.Minute,
		limit:       limit,
		trustedCIDR: trusted,
	}
}

// clientIPGeneric resolves the client IP, honoring X-Forwarded-For and
// X-Real-IP only when the immediate peer is a trusted proxy.
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
				if remoteIP != nil && ipnet.Contains(remoteIP) {
					trusted = true
					break
				}
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				return strings.TrimSpace(parts[0])
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware applies the per-IP limit.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)

		l.mu.Lock()
		now := time.Now()
		if now.Sub(l.windowStart) >= l.window {
			l.counts = make(map[string]int)
			l.windowStart = now
		}
		l.counts[ip]++
		over := l.counts[ip] > l.limit
		l.mu.Unlock()

		if over {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
