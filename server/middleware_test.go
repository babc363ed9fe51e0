package server

import (
	"course-studio/constant"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(constant.ContextKeyUserId, ownerId)
		c.Next()
	})
	router.POST("/upload", NewRateLimiter(client).Limit("upload", limit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, mr
}

func hitUpload(router *gin.Engine) int {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
	return rec.Code
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	router, mr := newLimitedRouter(t, 2)
	key := "rate_limit:upload:" + ownerId

	for i := 0; i < 2; i++ {
		if code := hitUpload(router); code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, code)
		}
	}
	if code := hitUpload(router); code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", code)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if code := hitUpload(router); code != http.StatusNoContent {
		t.Fatalf("after window: status = %d", code)
	}
}

func TestRateLimiterRestoresMissingExpiry(t *testing.T) {
	router, mr := newLimitedRouter(t, 10)
	key := "rate_limit:upload:" + ownerId
	// A counter whose EXPIRE never landed.
	if err := mr.Set(key, "50"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if code := hitUpload(router); code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", code)
	}
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Fatalf("counter still has no expiry, ttl = %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if code := hitUpload(router); code != http.StatusNoContent {
		t.Fatalf("user stays locked out, status = %d", code)
	}
}

func TestRateLimiterNilClientAllows(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload", NewRateLimiter(nil).Limit("upload", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		if code := hitUpload(router); code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, code)
		}
	}
}
