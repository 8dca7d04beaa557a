package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// ---------------------------------------------------------------------------
// SecurityHeaders
// ---------------------------------------------------------------------------

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
	csp := rec.Header().Get("Content-Security-Policy")
	for _, d := range []string{"default-src 'self'", "frame-ancestors 'none'"} {
		if !strings.Contains(csp, d) {
			t.Errorf("CSP missing directive %q: %s", d, csp)
		}
	}
	if hsts := rec.Header().Get("Strict-Transport-Security"); !strings.Contains(hsts, "max-age=") {
		t.Errorf("HSTS missing max-age: %q", hsts)
	}
}

// ---------------------------------------------------------------------------
// RateLimiter
// ---------------------------------------------------------------------------

func postFrom(h http.Handler, remoteAddr, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/advice", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	for i := 0; i < 3; i++ {
		if rec := postFrom(h, "192.168.1.1:12345", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec := postFrom(h, "192.168.1.1:12345", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on 4th request, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "rate_limit_exceeded" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRateLimiter_DifferentIPsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	postFrom(h, "10.0.0.1:1234", "")
	if rec := postFrom(h, "10.0.0.2:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("different IP should not be rate limited, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(okHandler)

	postFrom(h, "10.0.0.1:1234", "")
	if rec := postFrom(h, "10.0.0.1:1234", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	now = now.Add(61 * time.Second)
	if rec := postFrom(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200 after window, got %d", rec.Code)
	}
}

func TestRateLimiter_XForwardedFor_RightmostTrusted(t *testing.T) {
	rl := NewRateLimiter(1).WithTrustedProxies(1)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	// a spoofed leftmost entry must not give the client a fresh bucket
	postFrom(h, "127.0.0.1:1", "1.1.1.1, 203.0.113.7")
	if rec := postFrom(h, "127.0.0.1:1", "9.9.9.9, 203.0.113.7"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for same rightmost client, got %d", rec.Code)
	}
}

func TestRateLimiter_XForwardedFor_IgnoredWithoutProxy(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	postFrom(h, "198.51.100.20:1", "203.0.113.1")
	// rotating the header must not open a new bucket for the same peer
	if rec := postFrom(h, "198.51.100.20:1", "203.0.113.2"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for same remote address, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		xff     string
		proxies int
		want    string
	}{
		{"no proxy ignores header", "198.51.100.1:443", "203.0.113.9", 0, "198.51.100.1"},
		{"one proxy takes rightmost", "10.0.0.1:443", "1.1.1.1, 203.0.113.9", 1, "203.0.113.9"},
		{"two proxies", "10.0.0.1:443", "203.0.113.9, 10.0.0.2", 2, "203.0.113.9"},
		{"short header falls back", "10.0.0.1:443", "203.0.113.9", 2, "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set("X-Forwarded-For", tt.xff)
			if got := clientIP(req, tt.proxies); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiter_PruneDropsStaleClients(t *testing.T) {
	rl := NewRateLimiter(5)
	defer rl.Stop()
	now := time.Now()
	rl.now = func() time.Time { return now }
	postFrom(rl.Middleware(okHandler), "10.0.0.9:1", "")

	now = now.Add(2 * time.Minute)
	rl.prune()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.clients) != 0 {
		t.Errorf("expected stale clients removed, got %d", len(rl.clients))
	}
}

func TestRateLimiter_StopEndsCleanupLoop(t *testing.T) {
	rl := newRateLimiter(1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	rl.Stop()
	rl.Stop()
}

// ---------------------------------------------------------------------------
// RequestLogger
// ---------------------------------------------------------------------------

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	got := rec.Header().Get("X-Request-ID")
	if got == "" || got != seen {
		t.Errorf("expected request id header to match context, header=%q ctx=%q", got, seen)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status not passed through: %d", rec.Code)
	}
}

func TestRequestLogger_KeepsValidIncomingID(t *testing.T) {
	const id = "7f1c2d4e-9a3b-4c5d-8e6f-0a1b2c3d4e5f"
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	RequestLogger(okHandler).ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != id {
		t.Errorf("expected %q, got %q", id, got)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	rec = httptest.NewRecorder()
	RequestLogger(okHandler).ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got == "<script>" {
		t.Error("invalid incoming id was echoed")
	}
}
