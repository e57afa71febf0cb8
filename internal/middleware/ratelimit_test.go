package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"seoAnalyzerGO/internal/config"
)

func testRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doRequest(router *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = addr
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitAllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 3})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	router := testRouter(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"), "burst request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234"))
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	router := testRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234"))

	// one token per second at 60/min
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"))
}

func TestRateLimitIsPerClient(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	router := testRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234"))

	// a different client has its own bucket
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234"))
}
