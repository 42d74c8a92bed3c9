package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIP_DirectRemote(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "203.0.113.5:54321"
	if ip := clientIP(req); ip != "203.0.113.5" {
		t.Fatalf("expected direct remote IP, got %s", ip)
	}
}

func TestClientIP_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "http://example.local/", nil)
	req.RemoteAddr = "198.51.100.10:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.10")
	if ip := clientIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected X-Forwarded-For first value, got %s", ip)
	}
}

func TestIPRateLimiter_BlocksOverLimit(t *testing.T) {
	l := NewIPRateLimiter(2, time.Minute)
	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("third request inside the window should be blocked")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("other IPs should not be affected")
	}
}

func TestIPRateLimiter_WindowResets(t *testing.T) {
	l := NewIPRateLimiter(1, 10*time.Millisecond)
	if !l.Allow("10.0.0.3") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("10.0.0.3") {
		t.Fatal("second request inside the window should be blocked")
	}
	time.Sleep(15 * time.Millisecond)
	if !l.Allow("10.0.0.3") {
		t.Fatal("request after the window should be allowed again")
	}
}
