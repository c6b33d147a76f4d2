package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
)

// readinessTimeout bounds all dependency pings of one readiness probe.
// readinessTimeout ограничивает все проверки зависимостей одной пробы.
const readinessTimeout = 5 * time.Second

// CheckFunc pings one dependency.
// CheckFunc проверяет одну зависимость.
type CheckFunc func(ctx context.Context) error

// HealthHandler handles health check endpoints.
// HealthHandler обрабатывает эндпоинты проверки здоровья.
//
// Provides liveness and readiness probes for Kubernetes.
// Предоставляет liveness и readiness пробы для Kubernetes.
type HealthHandler struct {
	checks map[string]CheckFunc // Dependency checks by name / Проверки зависимостей по имени
}

// NewHealthHandler creates a HealthHandler probing PostgreSQL and, when
// given, Redis.
// NewHealthHandler создаёт HealthHandler, проверяющий PostgreSQL и, если
// передан, Redis.
func NewHealthHandler(db *gorm.DB, rdb redis.UniversalClient) *HealthHandler {
	h := &HealthHandler{checks: make(map[string]CheckFunc)}
	if db != nil {
		h.WithCheck("database", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}
	if rdb != nil {
		h.WithCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return h
}

// WithCheck registers an additional readiness check.
// WithCheck регистрирует дополнительную проверку готовности.
func (h *HealthHandler) WithCheck(name string, check CheckFunc) *HealthHandler {
	h.checks[name] = check
	return h
}

// HealthStatus represents the health status response.
// HealthStatus представляет ответ о состоянии здоровья.
type HealthStatus struct {
	Status    string           `json:"status"`           // Overall status (ok/degraded) / Общий статус (ok/degraded)
	Timestamp string           `json:"timestamp"`        // Check timestamp / Время проверки
	Checks    map[string]Check `json:"checks,omitempty"` // Individual checks / Отдельные проверки
}

// Check represents an individual health check result.
// Check представляет результат отдельной проверки здоровья.
type Check struct {
	Status  string `json:"status"`            // Check status (healthy/unhealthy) / Статус проверки
	Message string `json:"message,omitempty"` // Error message if unhealthy / Сообщение об ошибке
}

// Live handles GET /health/live.
// Live обрабатывает GET /health/live.
// @Summary Liveness probe
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /health/ready.
// Ready обрабатывает GET /health/ready.
//
// Any failing dependency turns the probe into 503.
// Любая недоступная зависимость превращает пробу в 503.
// @Summary Readiness probe
// @Description Check database and Redis connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]Check, len(names))
	allHealthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			checks[name] = Check{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
			continue
		}
		checks[name] = Check{Status: "healthy"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Health handles GET /health.
// Health обрабатывает GET /health.
// @Summary Health check
// @Description Basic health check
// @Tags health
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "healthy",
		"service":   "users-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
