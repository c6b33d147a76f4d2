package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/test/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.10:4321"
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestIPRateLimiter_Allow(t *testing.T) {
	limiter := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 2})

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Buckets are per address.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute})
	limiter.Allow("10.0.0.1")
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Minute)
	limiter.Allow("10.0.0.2")

	limiter.Cleanup()

	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})))
	router.GET("/", ok)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/").Code)

	w := serve(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestAuthRateLimitMiddleware(t *testing.T) {
	cfg := RateLimitConfig{AuthRequestsPerMinute: 3}

	t.Run("under the limit", func(t *testing.T) {
		cache := mocks.NewMockRateLimitCache(gomock.NewController(t))
		cache.EXPECT().Increment(gomock.Any(), "auth:192.0.2.10", time.Minute).Return(int64(2), nil)

		router := gin.New()
		router.POST("/login", AuthRateLimitMiddleware(cache, cfg, logger.Discard()), ok)

		w := serve(router, http.MethodPost, "/login")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("over the limit", func(t *testing.T) {
		cache := mocks.NewMockRateLimitCache(gomock.NewController(t))
		cache.EXPECT().Increment(gomock.Any(), "auth:192.0.2.10", time.Minute).Return(int64(4), nil)
		cache.EXPECT().TTL(gomock.Any(), "auth:192.0.2.10").Return(42*time.Second, nil)

		router := gin.New()
		router.POST("/login", AuthRateLimitMiddleware(cache, cfg, logger.Discard()), ok)

		w := serve(router, http.MethodPost, "/login")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "42", w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("counter failure lets requests through", func(t *testing.T) {
		cache := mocks.NewMockRateLimitCache(gomock.NewController(t))
		cache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("redis down"))

		router := gin.New()
		router.POST("/login", AuthRateLimitMiddleware(cache, cfg, logger.Discard()), ok)

		w := serve(router, http.MethodPost, "/login")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}
