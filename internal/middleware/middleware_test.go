package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw...)
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })
	e.GET("/fail", func(c echo.Context) error { return errors.New("kaput") })
	return e
}

func get(e *echo.Echo, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(3, 15*time.Minute, PaymentLimitMessage)
	e := newEcho(rl.Middleware())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(e, "/ok", "10.0.0.1").Code)
	}

	rec := get(e, "/ok", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, PaymentLimitMessage, body["message"])

	assert.Equal(t, http.StatusOK, get(e, "/ok", "10.0.0.2").Code)
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute, "")
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	now = now.Add(30 * time.Second)
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.Equal(t, DefaultLimitMessage, rl.message)
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute, "")
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.allow("old")
	now = now.Add(2 * time.Hour)
	rl.allow("new")

	assert.NotContains(t, rl.visitors, "old")
	assert.Contains(t, rl.visitors, "new")
}

func TestSecurityHeaders(t *testing.T) {
	e := newEcho(SecurityHeaders())
	rec := get(e, "/ok", "10.0.0.1")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
}

func TestRequestLog_WritesErrorResponse(t *testing.T) {
	e := newEcho(RequestLog())

	assert.Equal(t, http.StatusOK, get(e, "/ok", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTeapot, get(e, "/boom", "10.0.0.1").Code)
	assert.Equal(t, http.StatusInternalServerError, get(e, "/fail", "10.0.0.1").Code)
}
