package server

import (
	"context"
	"course-studio/constant"
	"course-studio/pkg/auth"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"net/http"
	"strings"
	"time"
)

const requestIdHeader = "X-Request-ID"

// requestLogger attaches a request scoped logger to the request context and
// logs one line per request.
func requestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Header(requestIdHeader, requestId)

		logger := base.With().Str("request_id", requestId).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func authRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		userId, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(constant.ContextKeyUserId, userId)
		c.Next()
	}
}

type RateLimiter struct {
	redisClient *redis.Client
}

// NewRateLimiter returns a limiter backed by Redis counters. A nil client
// disables limiting.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

// Limit allows limit requests per window for each user, falling back to the
// client IP for anonymous requests. Redis errors let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil || limit <= 0 {
			c.Next()
			return
		}
		subject := c.GetString(constant.ContextKeyUserId)
		if subject == "" {
			subject = c.ClientIP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, subject)

		count, ttl, err := rl.hit(c.Request.Context(), key, window)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}

// hit counts one request against key. A counter left without an expiry, by
// this call or an earlier one whose EXPIRE failed, is given the full window.
func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rl.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	remaining := ttl.Val()
	if remaining < 0 {
		if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("set rate limit expiry: %w", err)
		}
		remaining = window
	}
	return incr.Val(), remaining, nil
}
