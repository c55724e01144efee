package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/cache"
	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/metrics"
)

// RedisRateLimit enforces a fixed-window per-client request limit backed by
// Redis INCR + EXPIRE. When Redis is not configured the limiter is a no-op,
// which keeps local development and tests free of a Redis dependency.
func RedisRateLimit(requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		redis := cache.Get()
		if redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		count, err := redis.Incr(c.Request.Context(), key)
		if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}
		if count == 1 {
			_ = redis.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(requestsPerMinute) {
			metrics.Get().RateLimitExceededTotal.
				WithLabelValues(c.FullPath(), c.Request.Method).Inc()
			c.AbortWithStatusJSON(apierrors.StatusFor(apierrors.CodeRateLimited), gin.H{
				"error": string(apierrors.CodeRateLimited),
			})
			return
		}

		c.Next()
	}
}
