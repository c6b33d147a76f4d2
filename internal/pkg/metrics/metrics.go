// Package metrics holds the Prometheus collectors recorded by services and adapters.
// Пакет metrics содержит коллекторы Prometheus, которые пишут сервисы и адаптеры.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric of the service.
// Namespace - префикс всех метрик сервиса.
const Namespace = "users"

// Auth methods used as label values.
// Методы аутентификации, используемые как значения меток.
const (
	MethodPassword = "password" // User password login / Вход пользователя по паролю
	MethodAdmin    = "admin"    // Admin password login / Вход администратора
	MethodSSO      = "sso"      // Provider assertion / Утверждение провайдера
	MethodToken    = "token"    // Bearer token on a gated route / Bearer-токен на защищённом маршруте
)

var (
	// authAttemptsTotal counts authentication attempts by method and result.
	// authAttemptsTotal подсчитывает попытки аутентификации по методу и результату.
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of authentication attempts",
		},
		[]string{"method", "result"},
	)

	// registrationsTotal counts account registrations by method and result.
	// registrationsTotal подсчитывает регистрации по методу и результату.
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "registrations_total",
			Help:      "Total number of account registrations",
		},
		[]string{"method", "result"},
	)

	// ssoVerificationsTotal counts provider assertion checks by outcome.
	// ssoVerificationsTotal подсчитывает проверки утверждений провайдера по исходу.
	ssoVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sso_verifications_total",
			Help:      "Total number of SSO assertion verifications",
		},
		[]string{"outcome"},
	)

	authzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "authz_decisions_total",
			Help:      "Total number of authorization decisions",
		},
		[]string{"result", "resource", "action"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache operations",
		},
		[]string{"cache", "result"},
	)

	dbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Database operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)

	// circuitBreakerState reports 0 closed, 1 open, 2 half-open per breaker.
	// circuitBreakerState: 0 замкнут, 1 разомкнут, 2 полуоткрыт для каждого breaker.
	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"breaker"},
	)
)

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// RecordAuthAttempt records an authentication attempt.
// RecordAuthAttempt записывает попытку аутентификации.
func RecordAuthAttempt(method string, success bool) {
	authAttemptsTotal.WithLabelValues(method, result(success, "success", "failure")).Inc()
}

// RecordRegistration records a registration attempt.
// RecordRegistration записывает попытку регистрации.
func RecordRegistration(method string, success bool) {
	registrationsTotal.WithLabelValues(method, result(success, "success", "failure")).Inc()
}

// RecordSSOVerification records the outcome of a provider check:
// "accepted", "rejected" or "error".
// RecordSSOVerification записывает исход проверки у провайдера.
func RecordSSOVerification(outcome string) {
	ssoVerificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordAuthzDecision records an authorization decision.
// RecordAuthzDecision записывает решение авторизации.
func RecordAuthzDecision(allowed bool, resource, action string) {
	authzDecisionsTotal.WithLabelValues(result(allowed, "allowed", "denied"), resource, action).Inc()
}

// RecordCacheHit records a cache lookup result.
// RecordCacheHit записывает результат обращения к кэшу.
func RecordCacheHit(cacheName string, hit bool) {
	cacheHitsTotal.WithLabelValues(cacheName, result(hit, "hit", "miss")).Inc()
}

// RecordDBOperation records a database operation duration.
// RecordDBOperation записывает длительность операции БД.
func RecordDBOperation(operation, table string, duration time.Duration) {
	dbOperationDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// SetCircuitBreakerState publishes the state of a named breaker.
// SetCircuitBreakerState публикует состояние именованного breaker.
func SetCircuitBreakerState(name string, state int) {
	circuitBreakerState.WithLabelValues(name).Set(float64(state))
}
