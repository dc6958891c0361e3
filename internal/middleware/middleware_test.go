package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"spendly/pkg/log"
)

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.Any("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, log.RequestIDFromContext(c.Request.Context()))
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{}).RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(HeaderRequestID)
	if id == "" || w.Body.String() != id {
		t.Errorf("minted id %q, context id %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("incoming id not reused: header %q body %q", got, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		origins   []string
		origin    string
		method    string
		wantAllow string
		wantCreds string
		wantCode  int
	}{
		{name: "listed origin", origins: []string{"http://localhost:4200"}, origin: "http://localhost:4200", method: http.MethodGet, wantAllow: "http://localhost:4200", wantCreds: "true", wantCode: http.StatusOK},
		{name: "unlisted origin", origins: []string{"http://localhost:4200"}, origin: "http://evil.test", method: http.MethodGet, wantCode: http.StatusOK},
		{name: "wildcard", origins: []string{"*"}, origin: "http://any.test", method: http.MethodGet, wantAllow: "http://any.test", wantCode: http.StatusOK},
		{name: "preflight", origins: []string{"http://localhost:4200"}, origin: "http://localhost:4200", method: http.MethodOptions, wantAllow: "http://localhost:4200", wantCreds: "true", wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(New(log.NewNop(), Config{AllowedOrigins: tt.origins}).CORS())
			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow-origin = %q, want %q", got, tt.wantAllow)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("allow-credentials = %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{RateLimitEnabled: true, RequestsPerMin: 1, Burst: 2}).RateLimit())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client limited: %d", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), Config{RateLimitEnabled: false, RequestsPerMin: 1, Burst: 1}).RateLimit())
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d limited", i)
		}
	}
}

func TestRateLimiter_ConcurrentFirstRequestsShareBucket(t *testing.T) {
	// One token per minute refill keeps the test independent of timing.
	rl := newRateLimiter(1, 5)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if rl.allow("10.0.0.1") {
				allowed.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := allowed.Load(); got != 5 {
		t.Errorf("allowed = %d, want exactly the burst of 5", got)
	}
}
