package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/utils"
)

// IPRateLimiter is a fixed-window per-IP limiter used on the login endpoint.
type IPRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	counters map[string]*windowCounter
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:    limit,
		window:   window,
		counters: make(map[string]*windowCounter),
	}
}

// Allow reports whether another request from ip fits in the current window.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.counters[ip]
	if !ok || now.After(c.resetAt) {
		l.counters[ip] = &windowCounter{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if c.count >= l.limit {
		return false
	}
	c.count++
	return true
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many requests, try again later"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the remote IP, honoring the first X-Forwarded-For entry
// when present.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
