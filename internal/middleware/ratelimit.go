package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Buckets of clients
// that stay quiet for the idle window are evicted.
type RateLimiter struct {
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
	idle     time.Duration
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst for each client.
func NewRateLimiter(rps float64, burst int, idle time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: cache.New(idle, 2*idle),
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     idle,
	}
}

func (r *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := r.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		r.limiters.Set(key, l, r.idle)
		return l
	}
	l := rate.NewLimiter(r.rps, r.burst)
	if err := r.limiters.Add(key, l, r.idle); err != nil {
		// Lost a race with another request from the same client.
		if v, ok := r.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// Allow reports whether a request from key may proceed now.
func (r *RateLimiter) Allow(key string) bool {
	return r.limiterFor(key).Allow()
}

// Middleware rejects requests over the client's budget with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": gin.H{"code": "RATE_LIMITED", "message": "Too many requests"}})
			return
		}
		c.Next()
	}
}
