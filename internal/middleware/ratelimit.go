package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"seoAnalyzerGO/internal/config"
)

// RateLimiter is a per-client token bucket. Each client IP gets its own
// bucket; tokens refill continuously at the configured rate.
type RateLimiter struct {
	tokens     map[string]float64
	lastRefill map[string]time.Time
	mu         sync.Mutex
	rate       float64 // tokens per second
	bucketSize float64
	now        func() time.Time
}

// NewRateLimiter creates a rate limiter from configuration
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string]float64),
		lastRefill: make(map[string]time.Time),
		rate:       float64(cfg.RequestsPerMinute) / 60,
		bucketSize: float64(cfg.Burst),
		now:        time.Now,
	}
}

// RateLimit returns the gin middleware enforcing the limit
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"status_code": http.StatusTooManyRequests,
				"message":     "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if _, exists := rl.lastRefill[client]; !exists {
		rl.tokens[client] = rl.bucketSize
		rl.lastRefill[client] = now
	}

	elapsed := now.Sub(rl.lastRefill[client])
	rl.tokens[client] = min(rl.bucketSize, rl.tokens[client]+elapsed.Seconds()*rl.rate)
	rl.lastRefill[client] = now

	if rl.tokens[client] < 1 {
		return false
	}
	rl.tokens[client]--
	return true
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
