package handler

import (
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/Twit-Snap/users-service/internal/adapter/http/response"
	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
)

// payloadKey is the gin context key of the authenticated token payload.
// payloadKey - ключ gin-контекста для полезной нагрузки токена.
const payloadKey = "token_payload"

// AuthMiddleware gates routes behind a valid token.
// AuthMiddleware закрывает маршруты проверкой токена.
//
// Authenticate must run before RequireRole and RequirePermission.
// Authenticate должен выполняться до RequireRole и RequirePermission.
type AuthMiddleware struct {
	gate   port.AccessGate           // Token decoding and block check / Декодирование токена и проверка блокировки
	authz  port.AuthorizationService // Role permissions / Права ролей
	logger *logger.Logger            // Logger instance / Экземпляр логгера
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware.
func NewAuthMiddleware(gate port.AccessGate, authz port.AuthorizationService, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		gate:   gate,
		authz:  authz,
		logger: log.WithComponent("auth_middleware"),
	}
}

// Authenticate decodes the Authorization header, rejects blocked users and
// attaches the payload to the request.
// Authenticate декодирует заголовок Authorization, отклоняет заблокированных
// пользователей и прикрепляет полезную нагрузку к запросу.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := m.gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		setPayload(c, payload)
		c.Next()
	}
}

// RequireRole restricts the route to the given payload types.
// RequireRole ограничивает маршрут указанными типами полезной нагрузки.
func (m *AuthMiddleware) RequireRole(types ...domain.PayloadType) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := PayloadFrom(c)
		if !ok {
			response.AbortWithError(c, apperror.Unauthorized("authentication required"))
			return
		}
		if !slices.Contains(types, payload.Type) {
			response.AbortWithError(c, apperror.Forbidden("access denied"))
			return
		}
		c.Next()
	}
}

// RequirePermission asks the policy engine whether the caller's role may
// perform action on resource.
// RequirePermission спрашивает движок политик, может ли роль вызывающего
// выполнить action над resource.
func (m *AuthMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := PayloadFrom(c)
		if !ok {
			response.AbortWithError(c, apperror.Unauthorized("authentication required"))
			return
		}

		allowed, err := m.authz.CheckAccess(c.Request.Context(), payload, resource, action)
		if err != nil {
			m.logger.WithContext(c.Request.Context()).Error("authorization check failed",
				"subject", payload.Subject(),
				"resource", resource,
				"action", action,
				"error", err,
			)
			response.AbortWithError(c, err)
			return
		}
		if !allowed {
			response.AbortWithError(c, apperror.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// PayloadFrom returns the payload attached by Authenticate.
// PayloadFrom возвращает полезную нагрузку, прикреплённую Authenticate.
func PayloadFrom(c *gin.Context) (domain.TokenPayload, bool) {
	v, exists := c.Get(payloadKey)
	if !exists {
		return domain.TokenPayload{}, false
	}
	payload, ok := v.(domain.TokenPayload)
	return payload, ok
}

func setPayload(c *gin.Context, payload *domain.TokenPayload) {
	c.Set(payloadKey, *payload)
	ctx := logger.WithSubjectContext(c.Request.Context(), payload.Subject())
	c.Request = c.Request.WithContext(ctx)
}
