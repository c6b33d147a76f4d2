package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityConfig holds CORS and response header settings.
// SecurityConfig содержит настройки CORS и заголовков ответа.
type SecurityConfig struct {
	AllowOrigins     []string // Allowed origins, "*" for any / Разрешённые источники
	AllowMethods     []string // Allowed HTTP methods / Разрешённые HTTP методы
	AllowHeaders     []string // Allowed request headers / Разрешённые заголовки запроса
	ExposeHeaders    []string // Headers exposed to client / Заголовки, доступные клиенту
	AllowCredentials bool     // Allow credentials / Разрешить учётные данные
	MaxAge           int      // Preflight cache, seconds / Кэш preflight, секунды

	ContentSecurityPolicy   string // CSP header value / Значение заголовка CSP
	FrameOptions            string // X-Frame-Options / X-Frame-Options
	ReferrerPolicy          string // Referrer-Policy / Referrer-Policy
	StrictTransportSecurity string // HSTS, sent over TLS only / HSTS, только по TLS
}

// DefaultSecurityConfig returns the development configuration.
// DefaultSecurityConfig возвращает конфигурацию для разработки.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           86400,

		ContentSecurityPolicy:   "default-src 'none'; frame-ancestors 'none'",
		FrameOptions:            "DENY",
		ReferrerPolicy:          "no-referrer",
		StrictTransportSecurity: "max-age=31536000; includeSubDomains",
	}
}

// ProductionSecurityConfig restricts CORS to the given origins.
// ProductionSecurityConfig ограничивает CORS указанными источниками.
func ProductionSecurityConfig(allowedOrigins []string) SecurityConfig {
	cfg := DefaultSecurityConfig()
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// SecurityHeaders sets hardening headers on every response.
// SecurityHeaders устанавливает защитные заголовки в каждом ответе.
func SecurityHeaders(config SecurityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", config.FrameOptions)
		c.Header("Referrer-Policy", config.ReferrerPolicy)

		// Swagger UI needs inline scripts.
		// Swagger UI требует inline скриптов.
		if !strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Header("Content-Security-Policy", config.ContentSecurityPolicy)
		}
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", config.StrictTransportSecurity)
		}

		c.Next()
	}
}

// CORS handles preflight requests and sets cross-origin headers.
// CORS обрабатывает preflight запросы и устанавливает CORS заголовки.
func CORS(config SecurityConfig) gin.HandlerFunc {
	anyOrigin := slices.Contains(config.AllowOrigins, "*")
	methods := strings.Join(config.AllowMethods, ", ")
	headers := strings.Join(config.AllowHeaders, ", ")
	exposed := strings.Join(config.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := anyOrigin || slices.Contains(config.AllowOrigins, origin)

		if allowed && origin != "" {
			if anyOrigin {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				// Browsers refuse credentials with a wildcard origin.
				// Браузеры не принимают credentials с wildcard origin.
				if config.AllowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
			}
		}

		if c.Request.Method == http.MethodOptions {
			if !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Max-Age", maxAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if exposed != "" {
			c.Header("Access-Control-Expose-Headers", exposed)
		}
		c.Next()
	}
}

// NoCache marks responses as uncacheable; used on credential endpoints.
// NoCache запрещает кэширование ответов; используется на эндпоинтах входа.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
