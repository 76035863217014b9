package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ok", func(c *gin.Context) {
		rid, _ := c.Get(requestIDKey)
		c.String(http.StatusOK, asString(rid))
	})

	// No incoming header: a fresh ID is generated, echoed, and stored
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	hdr := w.Header().Get("X-Request-ID")
	if hdr == "" {
		t.Fatalf("expected generated X-Request-ID header")
	}
	if w.Body.String() != hdr {
		t.Fatalf("context id %q != header id %q", w.Body.String(), hdr)
	}

	// Incoming header is reused verbatim
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "rid-incoming")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "rid-incoming" {
		t.Fatalf("expected propagated id, got %q", got)
	}
}

func TestLogger_AttachesRequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())

	var got *zerolog.Logger
	r.GET("/ok", func(c *gin.Context) {
		got = LoggerFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got == nil {
		t.Fatalf("expected request-scoped logger in context")
	}
}

func TestLoggerFrom_FallbackWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatalf("fallback logger must not be nil")
	}

	// Wrong type stored under the key also falls back
	c.Set("logger", 42)
	if LoggerFrom(c) == nil {
		t.Fatalf("fallback logger must not be nil for wrong type")
	}
}

func TestRecovery_PanicsBecomeJSON500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"code":"internal_error"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id on panic response")
	}
}

func Test_asString_and_truncate(t *testing.T) {
	if asString("x") != "x" || asString(7) != "" || asString(nil) != "" {
		t.Fatalf("asString misbehaved")
	}

	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	if got := truncate("hello", 0); got != "hello" {
		t.Fatalf("max<=0 disables truncation, got %q", got)
	}
	if got := truncate("hello world", 5); got != "hello…" {
		t.Fatalf("truncate = %q", got)
	}
}
