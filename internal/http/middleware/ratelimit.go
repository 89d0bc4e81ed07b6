package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientWindow struct {
	start time.Time
	count int
}

var (
	rlMu      sync.Mutex
	rlClients = make(map[string]*clientWindow)
)

// memoryRateLimit is the in-process fallback used when Redis is not
// configured: a fixed window per key. State is lost on restart, which is
// acceptable for a single-instance deployment.
func memoryRateLimit(key string, maxRequests int, window time.Duration) bool {
	rlMu.Lock()
	defer rlMu.Unlock()

	now := time.Now()
	cw, ok := rlClients[key]
	if !ok || now.Sub(cw.start) > window {
		rlClients[key] = &clientWindow{start: now, count: 1}
		return true
	}

	cw.count++
	return cw.count <= maxRequests
}

// RateLimit enforces a per-IP fixed-window limit for the route. It uses
// Redis when the shared client is initialized and the in-memory window
// otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	redisLimiter := RedisRateLimit(maxRequests, window)
	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimiter(c)
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		if !memoryRateLimit(key, maxRequests, window) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
