package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Twit-Snap/users-service/internal/pkg/logger"
)

// RequestIDHeader is the HTTP header carrying the request id.
// RequestIDHeader - HTTP заголовок с id запроса.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied ids before they reach logs.
// maxRequestIDLength ограничивает id от клиента перед записью в логи.
const maxRequestIDLength = 128

// RequestID reuses a client X-Request-ID or generates a UUID, and stores it
// in the request context for the logger.
// RequestID использует X-Request-ID клиента или генерирует UUID и сохраняет
// его в контексте запроса для логгера.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequestIDContext(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// ClientInfo stores the caller's address and user agent in the request
// context; audit entries read them from there.
// ClientInfo сохраняет адрес и user agent клиента в контексте запроса;
// записи аудита берут их оттуда.
func ClientInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithClientContext(c.Request.Context(), logger.ClientInfo{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs every completed request.
// RequestLogger логирует каждый завершённый запрос.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithContext(c.Request.Context()).
			LogRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
