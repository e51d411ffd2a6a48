package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"spotfix-admin/views"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter is the subset of the Redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// StatusUpdateRateLimiter caps status submissions per operator (or client IP
// when no operator is authenticated) within a fixed window. A nil counter
// disables the limiter.
func StatusUpdateRateLimiter(counter Counter, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	if counter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := prefix + ":" + limiterSubject(c)

		// Increment the subject's count, starting the window on the first hit
		count, err := counter.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).WithField("key", key).Error("redis error incrementing count")
			abortLimiter(c, http.StatusInternalServerError, "Error updating status")
			return
		}

		if count == 1 {
			if err := counter.Expire(ctx, key, window).Err(); err != nil {
				log.WithError(err).WithField("key", key).Error("redis error setting TTL")
				abortLimiter(c, http.StatusInternalServerError, "Error updating status")
				return
			}
		}

		if count > int64(limit) {
			retryAfter, err := counter.TTL(ctx, key).Result()
			if err != nil {
				log.WithError(err).WithField("key", key).Debug("redis error reading TTL")
			} else if retryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			}
			log.WithFields(log.Fields{"key": key, "count": count}).Warn("status update rate limit exceeded")
			abortLimiter(c, http.StatusTooManyRequests, "Too many status updates, try again later")
			return
		}

		c.Next()
	}
}

func limiterSubject(c *gin.Context) string {
	if operator := c.GetString(OperatorKey); operator != "" {
		return "op:" + operator
	}
	return "ip:" + c.ClientIP()
}

func abortLimiter(c *gin.Context, status int, message string) {
	c.HTML(status, views.ErrorTemplate, views.ErrorPage{Message: message})
	c.Abort()
}
