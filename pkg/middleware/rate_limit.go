package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window per-client limit keyed on path and
// caller identity. With no Redis available it becomes a no-op.
func RateLimit(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		caller, exists := c.Get(UserIDKey)
		if !exists {
			caller = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.Request.URL.Path, caller)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// The limiter is best-effort; a Redis failure never blocks
			// the request.
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
