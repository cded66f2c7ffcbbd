package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"deadline-doom/config"
	"deadline-doom/pkg/log"
)

func newTestRouter(perMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop(), config.RateLimitConfig{RequestsPerMin: perMin})
	r := gin.New()
	r.Use(mw.RequestLog(), mw.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_PerClient(t *testing.T) {
	r := newTestRouter(1)

	if code := get(r, "10.0.0.1"); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}
	if code := get(r, "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", code)
	}
	if code := get(r, "10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client = %d, want 200", code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newTestRouter(0)
	for i := 0; i < 5; i++ {
		if code := get(r, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, code)
		}
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(60)
	if rl.burst != 6 {
		t.Errorf("burst = %d, want 6", rl.burst)
	}
	for i := 0; i < 6; i++ {
		if err := rl.Allow("k"); err != nil {
			t.Fatalf("Allow() #%d error = %v", i, err)
		}
	}
	if err := rl.Allow("k"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Allow() error = %v, want ErrRateLimited", err)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "9.9.9.9:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "3.3.3.3"}, "9.9.9.9:1", "3.3.3.3"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote without port", nil, "9.9.9.9", "9.9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := extractIP(req); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
