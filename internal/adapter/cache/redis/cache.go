// Package redis provides Redis-based cache implementations.
// Пакет redis предоставляет реализации кэша на базе Redis.
//
// This package implements all cache interfaces defined in port package
// using Redis as the underlying storage.
// Этот пакет реализует все интерфейсы кэша, определённые в пакете port,
// используя Redis в качестве хранилища.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

// AuthorizationCache implements port.AuthorizationCache using Redis.
// AuthorizationCache реализует интерфейс port.AuthorizationCache с использованием Redis.
//
// Decisions are keyed by role, not by account: every holder of a role
// shares one entry per (resource, action).
// Решения хранятся по роли, а не по аккаунту: все обладатели роли
// используют одну запись на пару (ресурс, действие).
type AuthorizationCache struct {
	client redis.UniversalClient // Redis client / Клиент Redis
	prefix string                // Key prefix / Префикс ключа
}

// NewAuthorizationCache creates a new AuthorizationCache instance.
// NewAuthorizationCache создаёт новый экземпляр AuthorizationCache.
func NewAuthorizationCache(client redis.UniversalClient) *AuthorizationCache {
	return &AuthorizationCache{
		client: client,
		prefix: "authz:decision",
	}
}

// GetDecision retrieves a cached authorization decision.
// GetDecision получает закэшированное решение авторизации.
// Returns: allowed (the decision), found (whether it was in cache), error.
// Возвращает: allowed (решение), found (было ли в кэше), error.
func (c *AuthorizationCache) GetDecision(ctx context.Context, role, resource, action string) (allowed, found bool, err error) {
	val, err := c.client.Get(ctx, c.buildKey(role, resource, action)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, apperror.Internal("failed to get authz decision", err)
	}
	return val == "1", true, nil // "1" = allowed, "0" = denied / "1" = разрешено, "0" = запрещено
}

// SetDecision caches an authorization decision.
// SetDecision кэширует решение авторизации.
func (c *AuthorizationCache) SetDecision(ctx context.Context, role, resource, action string, allowed bool, ttl time.Duration) error {
	value := "0"
	if allowed {
		value = "1"
	}
	if err := c.client.Set(ctx, c.buildKey(role, resource, action), value, ttl).Err(); err != nil {
		return apperror.Internal("failed to set authz decision", err)
	}
	return nil
}

// InvalidateAll invalidates all cached authorization decisions.
// InvalidateAll инвалидирует все закэшированные решения авторизации.
// Call this when RBAC policies change.
// Вызывайте при изменении политик RBAC.
func (c *AuthorizationCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return apperror.Internal("failed to delete cache key", err)
		}
	}
	if err := iter.Err(); err != nil {
		return apperror.Internal("failed to scan cache keys", err)
	}
	return nil
}

func (c *AuthorizationCache) buildKey(role, resource, action string) string {
	return fmt.Sprintf("%s:%s:%s:%s", c.prefix, role, resource, action)
}

// RateLimitCache implements port.RateLimitCache using Redis.
// RateLimitCache реализует интерфейс port.RateLimitCache с использованием Redis.
//
// Counters back both the failed-login lockout and the distributed request limiter.
// Счётчики используются блокировкой входа и распределённым лимитером запросов.
type RateLimitCache struct {
	client redis.UniversalClient // Redis client / Клиент Redis
	prefix string                // Key prefix / Префикс ключа
}

// NewRateLimitCache creates a new RateLimitCache instance.
// NewRateLimitCache создаёт новый экземпляр RateLimitCache.
func NewRateLimitCache(client redis.UniversalClient) *RateLimitCache {
	return &RateLimitCache{
		client: client,
		prefix: "ratelimit",
	}
}

func (c *RateLimitCache) key(key string) string {
	return c.prefix + ":" + key
}

// Increment increments a counter and returns the new value.
// Increment увеличивает счётчик и возвращает новое значение.
// Every increment pushes the expiry out to the full window.
// Каждое увеличение продлевает срок на полное окно.
func (c *RateLimitCache) Increment(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	fullKey := c.key(key)

	// MULTI/EXEC so INCR and EXPIRE apply together.
	// MULTI/EXEC, чтобы INCR и EXPIRE применялись вместе.
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, expiration)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, apperror.Internal("failed to increment rate limit counter", err)
	}
	return incr.Val(), nil
}

// GetCount retrieves the current count for a rate limit key.
// GetCount получает текущее значение счётчика для ключа rate limit.
func (c *RateLimitCache) GetCount(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, c.key(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, apperror.Internal("failed to get rate limit count", err)
	}
	return val, nil
}

// TTL returns the remaining lifetime of a counter, zero when absent.
// TTL возвращает оставшееся время жизни счётчика, ноль при отсутствии.
func (c *RateLimitCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.client.TTL(ctx, c.key(key)).Result()
	if err != nil {
		return 0, apperror.Internal("failed to get rate limit ttl", err)
	}
	// Redis reports -2 (missing) and -1 (no expiry) as negative durations.
	// Redis возвращает -2 (нет ключа) и -1 (без срока) как отрицательные значения.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Reset resets the counter for a key.
// Reset сбрасывает счётчик для ключа.
// Use this after successful login to reset failed attempt counter.
// Используйте после успешного входа для сброса счётчика неудачных попыток.
func (c *RateLimitCache) Reset(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return apperror.Internal("failed to reset rate limit counter", err)
	}
	return nil
}
