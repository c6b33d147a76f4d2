package service

import (
	"context"
	"strings"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/pkg/metrics"
	"github.com/Twit-Snap/users-service/internal/pkg/telemetry"
	"github.com/Twit-Snap/users-service/internal/port"
)

const bearerScheme = "Bearer"

// AccessGate implements port.AccessGate interface.
// AccessGate реализует интерфейс port.AccessGate.
//
// Every gated request runs DecodeToken then CheckBlockedUser; the first
// failure is returned untouched.
// Каждый защищённый запрос проходит DecodeToken, затем CheckBlockedUser;
// первая ошибка возвращается без изменений.
type AccessGate struct {
	tokens port.TokenService
	users  port.UserRepository
	logger *logger.Logger
}

// NewAccessGate creates a new AccessGate instance.
// NewAccessGate создаёт новый экземпляр AccessGate.
func NewAccessGate(tokens port.TokenService, users port.UserRepository, log *logger.Logger) *AccessGate {
	return &AccessGate{
		tokens: tokens,
		users:  users,
		logger: log.WithComponent("access_gate"),
	}
}

// DecodeToken extracts the token from a "Bearer <token>" header value and verifies it.
// DecodeToken извлекает токен из значения заголовка "Bearer <token>" и проверяет его.
func (g *AccessGate) DecodeToken(ctx context.Context, authorization string) (*domain.TokenPayload, error) {
	log := g.logger.WithContext(ctx)

	if strings.TrimSpace(authorization) == "" {
		return nil, apperror.Unauthorized("authorization header is required")
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return nil, apperror.Unauthorized("authorization header must be 'Bearer <token>'")
	}

	payload, err := g.tokens.Verify(token)
	if err != nil {
		log.Debug("token rejected", "error", err)
		return nil, err
	}
	return payload, nil
}

// CheckBlockedUser rejects payloads whose account is missing or blocked.
// Admin payloads are never checked.
// CheckBlockedUser отклоняет полезные нагрузки отсутствующих или
// заблокированных аккаунтов. Админы не проверяются.
//
// A missing account is reported as blocked so that a stale or forged token
// learns nothing about which ids exist.
// Отсутствующий аккаунт считается заблокированным, чтобы устаревший или
// поддельный токен не раскрывал существование id.
func (g *AccessGate) CheckBlockedUser(ctx context.Context, payload *domain.TokenPayload) error {
	if payload.IsAdmin() {
		return nil
	}

	log := g.logger.WithContext(ctx)

	user, err := g.users.FindByID(ctx, payload.UserID)
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeNotFound) {
			log.Error("failed to load account for blocked check", "user_id", payload.UserID, "error", err)
			return err
		}
		log.Warn("token references a missing account", "user_id", payload.UserID)
		return apperror.Blocked("user is blocked")
	}

	if user.IsBlocked {
		log.Info("blocked user rejected", "user_id", payload.UserID)
		return apperror.Blocked("user is blocked")
	}
	return nil
}

// Authenticate runs DecodeToken and CheckBlockedUser in order.
// Authenticate выполняет DecodeToken и CheckBlockedUser по порядку.
func (g *AccessGate) Authenticate(ctx context.Context, authorization string) (payload *domain.TokenPayload, err error) {
	ctx, span := telemetry.StartSpan(ctx, "AccessGate.Authenticate",
		telemetry.AttrAuthMethod.String(metrics.MethodToken))
	defer func() {
		if payload != nil {
			span.SetAttributes(telemetry.AttrPayloadType.String(string(payload.Type)))
		}
		telemetry.EndSpan(span, err)
	}()

	payload, err = g.DecodeToken(ctx, authorization)
	if err != nil {
		return nil, err
	}
	if err := g.CheckBlockedUser(ctx, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
