// Package middleware provides HTTP middleware components for the Gin framework.
// Пакет middleware предоставляет компоненты HTTP middleware для фреймворка Gin.
package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// RateLimitConfig holds rate limiter configuration.
// RateLimitConfig содержит конфигурацию ограничителя частоты запросов.
type RateLimitConfig struct {
	// RequestsPerSecond is the steady per-IP rate.
	// RequestsPerSecond - постоянный лимит запросов в секунду на IP.
	RequestsPerSecond float64

	// Burst is the maximum number of requests allowed in a burst.
	// Burst - максимальное количество запросов в пике.
	Burst int

	// AuthRequestsPerMinute bounds credential endpoints per IP across instances.
	// AuthRequestsPerMinute ограничивает эндпоинты входа на IP для всех экземпляров.
	AuthRequestsPerMinute int

	// IdleTTL is how long an unused limiter is kept.
	// IdleTTL - сколько хранится неиспользуемый ограничитель.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig returns default rate limit configuration.
// DefaultRateLimitConfig возвращает конфигурацию ограничения частоты по умолчанию.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond:     20,
		Burst:                 40,
		AuthRequestsPerMinute: 30,
		IdleTTL:               10 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is an in-memory token bucket per client IP.
// IPRateLimiter - in-memory token bucket на IP клиента.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimitConfig
}

// NewIPRateLimiter creates a new in-memory IP rate limiter.
// NewIPRateLimiter создаёт новый in-memory ограничитель частоты по IP.
func NewIPRateLimiter(config RateLimitConfig) *IPRateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = DefaultRateLimitConfig().IdleTTL
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
	}
}

// Allow reports whether ip may make a request now.
// Allow сообщает, может ли ip выполнить запрос сейчас.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// Cleanup evicts limiters idle for longer than IdleTTL.
// Cleanup удаляет ограничители, простаивающие дольше IdleTTL.
func (l *IPRateLimiter) Cleanup() {
	cutoff := time.Now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// Run calls Cleanup periodically until ctx is done.
// Run периодически вызывает Cleanup, пока ctx не завершён.
func (l *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.config.IdleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// RateLimitMiddleware returns a Gin middleware for per-IP rate limiting.
// RateLimitMiddleware возвращает Gin middleware для ограничения частоты по IP.
func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.AbortWithError(c, apperror.TooManyRequests("rate limit exceeded", 1))
			return
		}
		c.Next()
	}
}

// AuthRateLimitMiddleware counts credential requests per IP in Redis so the
// limit holds across replicas. Counter failures let the request through.
// AuthRateLimitMiddleware считает запросы входа по IP в Redis, чтобы лимит
// действовал для всех реплик. При сбое счётчика запрос пропускается.
func AuthRateLimitMiddleware(cache port.RateLimitCache, config RateLimitConfig, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("auth_rate_limit")
	limit := int64(config.AuthRequestsPerMinute)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "auth:" + c.ClientIP()

		count, err := cache.Increment(ctx, key, time.Minute)
		if err != nil {
			log.WithContext(ctx).Warn("auth rate limit counter unavailable", "error", err)
			c.Next()
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > limit {
			retryAfter := 60
			if ttl, ttlErr := cache.TTL(ctx, key); ttlErr == nil && ttl > 0 {
				retryAfter = int(ttl.Round(time.Second).Seconds())
			}
			response.AbortWithError(c, apperror.TooManyRequests("too many requests, please try again later", retryAfter))
			return
		}

		c.Next()
	}
}
