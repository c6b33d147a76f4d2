// Package circuitbreaker guards the PostgreSQL and Redis adapters.
// Пакет circuitbreaker защищает адаптеры PostgreSQL и Redis.
//
// Only infrastructure failures count toward opening a breaker. Outcomes the
// store reports on purpose (a missing user, a taken username, a duplicate
// follow) are answers, not outages.
// К размыканию ведут только сбои инфраструктуры. Ответы хранилища
// (нет пользователя, имя занято, повторная подписка) сбоями не считаются.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
)

// State of a breaker.
// Состояние breaker.
type State int

const (
	StateClosed   State = iota // Calls flow / Вызовы проходят
	StateOpen                  // Calls are refused / Вызовы отклоняются
	StateHalfOpen              // A few probe calls decide / Пробные вызовы решают
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds breaker settings.
// Config содержит настройки breaker.
type Config struct {
	Name                string        // Label in logs and metrics / Метка в логах и метриках
	MaxFailures         int           // Consecutive failures before opening / Сбоев подряд до размыкания
	Timeout             time.Duration // Open period before probing / Время до пробных вызовов
	MaxHalfOpenRequests int           // Probes admitted while half-open / Допустимые пробные вызовы

	// OnStateChange runs in its own goroutine after a transition.
	// OnStateChange выполняется в отдельной горутине после перехода.
	OnStateChange func(name string, from, to State)

	// Clock defaults to time.Now.
	// Clock по умолчанию time.Now.
	Clock func() time.Time
}

// CircuitBreaker counts consecutive infrastructure failures of one adapter.
// CircuitBreaker считает подряд идущие сбои инфраструктуры одного адаптера.
type CircuitBreaker struct {
	config Config

	mu       sync.Mutex
	state    State
	failures int
	probes   int
	passed   int
	openedAt time.Time
}

// New creates a closed breaker; non-positive settings fall back to
// 5 failures, 30 seconds and one probe.
// New создаёт замкнутый breaker; неположительные настройки заменяются
// на 5 сбоев, 30 секунд и один пробный вызов.
func New(config Config) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxHalfOpenRequests <= 0 {
		config.MaxHalfOpenRequests = 1
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	metrics.SetCircuitBreakerState(config.Name, int(StateClosed))
	return &CircuitBreaker{config: config}
}

// Trips reports whether err counts as an infrastructure failure.
// Trips сообщает, считается ли err сбоем инфраструктуры.
//
// INTERNAL_ERROR and SERVICE_UNAVAILABLE trip, and so does any error the
// adapters did not classify (driver and network errors). Every other
// AppError code is a domain answer. A cancelled context means the caller
// left, which says nothing about the store.
// INTERNAL_ERROR и SERVICE_UNAVAILABLE размыкают, как и любая
// неклассифицированная ошибка (драйвер, сеть). Остальные коды AppError -
// ответы домена. Отменённый контекст означает, что клиент ушёл.
func Trips(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == apperror.CodeInternal || appErr.Code == apperror.CodeServiceUnavailable
	}
	return true
}

// Execute runs fn unless the breaker is open.
// Execute выполняет fn, если breaker не разомкнут.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn(ctx)
	cb.record(err)
	return err
}

// ExecuteWithResult is Execute for functions returning a value.
// ExecuteWithResult - Execute для функций, возвращающих значение.
func ExecuteWithResult[T any](ctx context.Context, cb *CircuitBreaker, fn func(context.Context) (T, error)) (T, error) {
	if err := cb.admit(); err != nil {
		var zero T
		return zero, err
	}
	result, err := fn(ctx)
	cb.record(err)
	return result, err
}

// State returns the current state.
// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.config.Clock().Sub(cb.openedAt) < cb.config.Timeout {
			return apperror.ServiceUnavailable(cb.config.Name + " is temporarily unavailable")
		}
		cb.transition(StateHalfOpen)
		cb.probes = 1
	case StateHalfOpen:
		if cb.probes >= cb.config.MaxHalfOpenRequests {
			return apperror.ServiceUnavailable(cb.config.Name + " is recovering")
		}
		cb.probes++
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		// No verdict; hand the probe slot back.
		// Вердикта нет; возвращаем слот пробы.
		if cb.state == StateHalfOpen && cb.probes > 0 {
			cb.probes--
		}
		return
	}

	if Trips(err) {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.config.MaxFailures {
			cb.transition(StateOpen)
			cb.openedAt = cb.config.Clock()
		}
		return
	}

	// Domain answers prove the store is reachable.
	// Ответы домена доказывают, что хранилище доступно.
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.passed++
		if cb.passed >= cb.config.MaxHalfOpenRequests {
			cb.transition(StateClosed)
		}
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.failures, cb.probes, cb.passed = 0, 0, 0

	metrics.SetCircuitBreakerState(cb.config.Name, int(to))
	if cb.config.OnStateChange != nil {
		go cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
