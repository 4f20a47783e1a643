package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter holds the per-client budgets: general for every route, auth for credential submission.
type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

type RateLimitMiddleware struct {
	generalRPM int
	authRPM    int
	trusted    []netip.Prefix
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

// NewRateLimitMiddleware builds per-client limiters. generalRPM <= 0 disables the
// general budget; authRPM <= 0 falls back to 10 per minute. Clients are keyed by
// the peer address; forwarding headers count only when the peer is in trustedProxies.
func NewRateLimitMiddleware(generalRPM int, authRPM int, trustedProxies []string) *RateLimitMiddleware {
	if authRPM <= 0 {
		authRPM = 10
	}

	trusted, err := ParseTrustedProxies(trustedProxies)
	if err != nil {
		slog.Warn("ignoring trusted proxies", "error", err)
		trusted = nil
	}

	return &RateLimitMiddleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		trusted:    trusted,
		clients:    map[string]*clientLimiter{},
	}
}

// ParseTrustedProxies accepts CIDR prefixes or bare addresses.
func ParseTrustedProxies(raw []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.getLimiter(clientIP(r, m.trusted))

		target := limiter.general
		if isCredentialPath(r.URL.Path) {
			target = limiter.auth
		}

		if !target.Allow() {
			w.Header().Set("Retry-After", "60")
			writeMessage(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isCredentialPath reports whether path submits credentials and gets the stricter budget.
func isCredentialPath(path string) bool {
	return strings.EqualFold(strings.TrimSuffix(path, "/"), "/login")
}

func (m *RateLimitMiddleware) getLimiter(key string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[key]; exists {
		limiter.lastSeen = time.Now()
		m.gcLocked()
		return limiter
	}

	general := rate.NewLimiter(rate.Inf, 0)
	if m.generalRPM > 0 {
		general = rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM)
	}
	auth := rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM)
	created := &clientLimiter{general: general, auth: auth, lastSeen: time.Now()}
	m.clients[key] = created
	m.gcLocked()

	return created
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

// clientIP returns the peer host, or the first forwarded address when the peer is a trusted proxy.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := remoteHost(r)
	if len(trusted) == 0 || !isTrusted(peer, trusted) {
		return peer
	}

	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return peer
}

func remoteHost(r *http.Request) string {
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote)
	if err == nil && host != "" {
		return host
	}

	return remote
}

func isTrusted(host string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
