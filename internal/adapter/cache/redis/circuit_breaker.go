package redis

import (
	"context"
	"time"

	"github.com/Twit-Snap/users-service/internal/pkg/circuitbreaker"
	"github.com/Twit-Snap/users-service/internal/port"
)

// CircuitBreakerConfig holds configuration for cache circuit breakers.
// CircuitBreakerConfig содержит конфигурацию circuit breaker для кэша.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of failures before opening the circuit.
	// MaxFailures - количество сбоев до размыкания цепи.
	MaxFailures int

	// Timeout is the duration to wait before testing if Redis recovered.
	// Timeout - время ожидания перед проверкой восстановления Redis.
	Timeout time.Duration

	// OnStateChange is called when circuit breaker state changes.
	// OnStateChange вызывается при изменении состояния circuit breaker.
	OnStateChange func(name string, from, to circuitbreaker.State)
}

// DefaultCircuitBreakerConfig returns default circuit breaker configuration for Redis.
// DefaultCircuitBreakerConfig возвращает конфигурацию circuit breaker по умолчанию для Redis.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
	}
}

func (c CircuitBreakerConfig) breaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:                name,
		MaxFailures:         c.MaxFailures,
		Timeout:             c.Timeout,
		MaxHalfOpenRequests: 1,
		OnStateChange:       c.OnStateChange,
	})
}

// ==================== Authorization Cache with Circuit Breaker ====================

// AuthorizationCacheWithCB wraps AuthorizationCache with circuit breaker protection.
// AuthorizationCacheWithCB оборачивает AuthorizationCache с защитой circuit breaker.
type AuthorizationCacheWithCB struct {
	cache *AuthorizationCache
	cb    *circuitbreaker.CircuitBreaker
}

// NewAuthorizationCacheWithCB creates a new AuthorizationCache with circuit breaker.
// NewAuthorizationCacheWithCB создаёт новый AuthorizationCache с circuit breaker.
func NewAuthorizationCacheWithCB(cache *AuthorizationCache, config CircuitBreakerConfig) *AuthorizationCacheWithCB {
	return &AuthorizationCacheWithCB{cache: cache, cb: config.breaker("redis-authz-cache")}
}

// GetDecision retrieves a cached decision; any failure reads as a miss.
// GetDecision получает закэшированное решение; любой сбой считается промахом.
func (c *AuthorizationCacheWithCB) GetDecision(ctx context.Context, role, resource, action string) (allowed, found bool, err error) {
	type result struct {
		allowed bool
		found   bool
	}

	r, cbErr := circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (result, error) {
		a, f, e := c.cache.GetDecision(ctx, role, resource, action)
		return result{allowed: a, found: f}, e
	})
	if cbErr != nil {
		// The enforcer remains the source of truth.
		// Источником истины остаётся enforcer.
		return false, false, nil //nolint:nilerr // degrade to a cache miss
	}
	return r.allowed, r.found, nil
}

// SetDecision caches an authorization decision with circuit breaker protection.
// SetDecision кэширует решение авторизации с защитой circuit breaker.
func (c *AuthorizationCacheWithCB) SetDecision(ctx context.Context, role, resource, action string, allowed bool, ttl time.Duration) error {
	return c.cb.Execute(ctx, func(ctx context.Context) error {
		return c.cache.SetDecision(ctx, role, resource, action, allowed, ttl)
	})
}

// InvalidateAll invalidates all cached decisions with circuit breaker protection.
// InvalidateAll инвалидирует все решения с защитой circuit breaker.
func (c *AuthorizationCacheWithCB) InvalidateAll(ctx context.Context) error {
	return c.cb.Execute(ctx, func(ctx context.Context) error {
		return c.cache.InvalidateAll(ctx)
	})
}

// CircuitBreakerState returns the current state of the circuit breaker.
// CircuitBreakerState возвращает текущее состояние circuit breaker.
func (c *AuthorizationCacheWithCB) CircuitBreakerState() circuitbreaker.State {
	return c.cb.State()
}

var _ port.AuthorizationCache = (*AuthorizationCacheWithCB)(nil)

// ==================== Rate Limit Cache with Circuit Breaker ====================

// RateLimitCacheWithCB wraps RateLimitCache with circuit breaker protection.
// RateLimitCacheWithCB оборачивает RateLimitCache с защитой circuit breaker.
type RateLimitCacheWithCB struct {
	cache *RateLimitCache
	cb    *circuitbreaker.CircuitBreaker
}

// NewRateLimitCacheWithCB creates a new RateLimitCache with circuit breaker.
// NewRateLimitCacheWithCB создаёт новый RateLimitCache с circuit breaker.
func NewRateLimitCacheWithCB(cache *RateLimitCache, config CircuitBreakerConfig) *RateLimitCacheWithCB {
	return &RateLimitCacheWithCB{cache: cache, cb: config.breaker("redis-ratelimit-cache")}
}

// Increment increments a rate limit counter with circuit breaker protection.
// Increment увеличивает счётчик rate limit с защитой circuit breaker.
func (c *RateLimitCacheWithCB) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	return circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (int64, error) {
		return c.cache.Increment(ctx, key, expiration)
	})
}

// GetCount retrieves current count with circuit breaker protection.
// GetCount получает текущий счётчик с защитой circuit breaker.
func (c *RateLimitCacheWithCB) GetCount(ctx context.Context, key string) (int64, error) {
	return circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (int64, error) {
		return c.cache.GetCount(ctx, key)
	})
}

// TTL retrieves the remaining window with circuit breaker protection.
// TTL получает оставшееся окно с защитой circuit breaker.
func (c *RateLimitCacheWithCB) TTL(ctx context.Context, key string) (time.Duration, error) {
	return circuitbreaker.ExecuteWithResult(ctx, c.cb, func(ctx context.Context) (time.Duration, error) {
		return c.cache.TTL(ctx, key)
	})
}

// Reset resets a rate limit counter with circuit breaker protection.
// Reset сбрасывает счётчик rate limit с защитой circuit breaker.
func (c *RateLimitCacheWithCB) Reset(ctx context.Context, key string) error {
	return c.cb.Execute(ctx, func(ctx context.Context) error {
		return c.cache.Reset(ctx, key)
	})
}

// CircuitBreakerState returns the current state of the circuit breaker.
// CircuitBreakerState возвращает текущее состояние circuit breaker.
func (c *RateLimitCacheWithCB) CircuitBreakerState() circuitbreaker.State {
	return c.cb.State()
}

var _ port.RateLimitCache = (*RateLimitCacheWithCB)(nil)
