package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AuthRateLimiter is a fixed-window limiter for the login endpoints, keyed
// by client IP. The IP comes from gin's ClientIP, which only honours
// forwarding headers from the engine's trusted proxies.
// Redis failures let the request through.
func AuthRateLimiter(rdb redis.UniversalClient, requestsPerWindow int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:auth:%s", c.ClientIP())

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		count := incr.Val()
		if count > int64(requestsPerWindow) {
			ttl, err := rdb.TTL(ctx, key).Result()
			if err != nil || ttl <= 0 {
				ttl = window
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerWindow))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(ttl.Seconds())))
			c.Abort()
			return
		}

		remaining := requestsPerWindow - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerWindow))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

// StreamConnectionLimiter caps concurrent long-lived connections per user.
// The slot is released when the downstream handler returns, which for a
// websocket is when the connection closes.
func StreamConnectionLimiter(rdb redis.UniversalClient, maxConnPerUser int, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			_ = c.Error(apperrors.Unauthorized("missing_auth", "Authentication required"))
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("stream_conn:%s", userID)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			_ = c.Error(apperrors.InternalServerError("Connection limit check failed"))
			c.Abort()
			return
		}

		// The request context is gone once the connection closes.
		defer rdb.Decr(context.WithoutCancel(ctx), key)

		if incr.Val() > int64(maxConnPerUser) {
			_ = c.Error(apperrors.RateLimitExceeded("Too many open order streams", int(ttl.Seconds())))
			c.Abort()
			return
		}

		c.Next()
	}
}
