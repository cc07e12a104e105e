package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rosterpad/rosterpad/pkg/metrics"
)

// limiterKey picks the bucket for a request: the session subject when the
// gate has set claims, otherwise the client IP. Keying on the subject keeps
// admins behind a shared NAT from starving each other.
func limiterKey(c *gin.Context) string {
	if v, ok := c.Get("claims"); ok {
		if cm, ok := v.(map[string]interface{}); ok {
			if sub, ok := cm["sub"].(string); ok && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimitMiddleware enforces an in-process token-bucket limit per caller.
// rps is the refill rate, burst the bucket size. Each middleware instance
// owns its buckets, so two routers never share limits.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	var buckets sync.Map // map[string]*rate.Limiter
	return func(c *gin.Context) {
		key := limiterKey(c)
		v, ok := buckets.Load(key)
		if !ok {
			v, _ = buckets.LoadOrStore(key, rate.NewLimiter(rate.Limit(rps), burst))
		}
		if !v.(*rate.Limiter).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
