package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendly/internal/middleware"
	"spendly/pkg/log"
	"spendly/pkg/response"
)

type stubChat struct{}

func (stubChat) Chat(c *gin.Context)    { c.Status(http.StatusOK) }
func (stubChat) Session(c *gin.Context) { c.Status(http.StatusOK) }

func newServer(t *testing.T, mw middleware.Middleware) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Port:        18080,
		Mode:        gin.TestMode,
		Environment: "test",
		Middleware:  mw,
		ChatHandler: stubChat{},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestNew_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no mode", cfg: Config{Port: 1, ChatHandler: stubChat{}}},
		{name: "no port", cfg: Config{Mode: gin.TestMode, ChatHandler: stubChat{}}},
		{name: "no chat handler", cfg: Config{Port: 1, Mode: gin.TestMode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(log.NewNop(), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, middleware.New(log.NewNop(), middleware.Config{}))

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, w.Code)
		}
		var env struct {
			Data map[string]any `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s decode: %v", path, err)
		}
		if env.Data["service"] != ServiceName {
			t.Errorf("%s body = %s", path, w.Body.String())
		}
		if _, err := time.ParseInLocation(response.DateTimeFormat, env.Data["time"].(string), time.Local); err != nil {
			t.Errorf("%s time field: %v", path, err)
		}
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("health body = %s", w.Body.String())
	}
	if w.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("request id header missing")
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Errorf("metrics status = %d", w.Code)
	}
}

func TestChatRoutesRateLimited(t *testing.T) {
	mw := middleware.New(log.NewNop(), middleware.Config{RateLimitEnabled: true, RequestsPerMin: 1, Burst: 1})
	srv := newServer(t, mw)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	if w.Code != http.StatusOK {
		t.Errorf("session read should not be limited: %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("upload without handler = %d, want 404", w.Code)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := newServer(t, middleware.New(log.NewNop(), middleware.Config{}))
	srv.port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
