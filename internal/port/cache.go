// Package port defines interfaces (ports) for the application's external dependencies.
// Пакет port определяет интерфейсы (порты) для внешних зависимостей приложения.
package port

import (
	"context"
	"time"
)

// AuthorizationCache caches role permission decisions.
// AuthorizationCache кэширует решения о правах ролей.
type AuthorizationCache interface {
	// GetDecision returns the cached decision and whether one was found.
	// GetDecision возвращает закэшированное решение и признак его наличия.
	GetDecision(ctx context.Context, role, resource, action string) (allowed, found bool, err error)

	// SetDecision caches a decision for ttl.
	// SetDecision кэширует решение на ttl.
	SetDecision(ctx context.Context, role, resource, action string, allowed bool, ttl time.Duration) error

	// InvalidateAll drops every cached decision.
	// InvalidateAll удаляет все закэшированные решения.
	InvalidateAll(ctx context.Context) error
}

// RateLimitCache keeps expiring counters.
// RateLimitCache хранит счётчики с истечением.
//
// Used for failed-login lockout and the distributed request limiter.
// Используется для блокировки после неудачных входов и распределённого лимитера.
type RateLimitCache interface {
	// Increment bumps the counter, (re)setting its expiry, and returns the new value.
	// Increment увеличивает счётчик, обновляя срок, и возвращает новое значение.
	Increment(ctx context.Context, key string, expiration time.Duration) (int64, error)

	// GetCount returns the current value, 0 when absent.
	// GetCount возвращает текущее значение, 0 при отсутствии.
	GetCount(ctx context.Context, key string) (int64, error)

	// TTL returns the remaining lifetime of the counter.
	// TTL возвращает оставшееся время жизни счётчика.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Reset deletes the counter.
	// Reset удаляет счётчик.
	Reset(ctx context.Context, key string) error
}
