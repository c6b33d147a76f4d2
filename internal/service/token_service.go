// Package service contains the business logic layer of the application.
// Пакет service содержит слой бизнес-логики приложения.
//
// Services implement the business rules and orchestrate operations
// between repositories and other components.
// Сервисы реализуют бизнес-правила и координируют операции
// между репозиториями и другими компонентами.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

// tokenClaims is the JWT body: the payload union plus registered claims.
// tokenClaims - тело JWT: объединение полезной нагрузки плюс стандартные claims.
type tokenClaims struct {
	domain.TokenPayload
	jwt.RegisteredClaims
}

// TokenService implements port.TokenService with HMAC-SHA256 signatures.
// TokenService реализует port.TokenService с подписью HMAC-SHA256.
type TokenService struct {
	secret []byte           // Signing secret / Секрет подписи
	ttl    time.Duration    // Token lifetime / Время жизни токена
	now    func() time.Time // Clock / Часы
	parser *jwt.Parser      // Verifying parser / Проверяющий парсер
}

// TokenOption customizes a TokenService.
// TokenOption настраивает TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the wall clock, used by tests to move past expiry.
// WithClock заменяет системные часы; используется в тестах для проверки истечения.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a token service. The secret must not be empty.
// NewTokenService создаёт сервис токенов. Секрет не может быть пустым.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// The parser shares the clock so expiry follows the injected time.
	// Парсер использует те же часы, поэтому срок считается по внедрённому времени.
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// Sign returns a compact HS256 token carrying payload, valid for the configured TTL.
// Sign возвращает компактный HS256 токен с payload, действительный в течение TTL.
func (s *TokenService) Sign(payload domain.TokenPayload) (string, error) {
	if err := payload.Validate(); err != nil {
		return "", apperror.Internal("refusing to sign malformed payload", err)
	}

	now := s.now()
	claims := tokenClaims{
		TokenPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperror.Internal("failed to sign token", err)
	}
	return signed, nil
}

// SignResetPassword signs a resetPassword payload for the given account.
// SignResetPassword подписывает payload сброса пароля для аккаунта.
func (s *TokenService) SignResetPassword(userID int64, email string) (string, error) {
	return s.Sign(domain.NewResetPasswordPayload(userID, email))
}

// Verify checks signature, algorithm and expiry and returns the payload.
// Verify проверяет подпись, алгоритм и срок действия и возвращает payload.
//
// Any failure is reported as the same UNAUTHORIZED error.
// Любая ошибка возвращается как одинаковая ошибка UNAUTHORIZED.
func (s *TokenService) Verify(token string) (*domain.TokenPayload, error) {
	claims := &tokenClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.Unauthorized("invalid token")
	}
	if err := claims.TokenPayload.Validate(); err != nil {
		return nil, apperror.Unauthorized("invalid token")
	}

	payload := claims.TokenPayload
	return &payload, nil
}

// Decode parses the payload without checking signature or expiry.
// Decode разбирает payload без проверки подписи и срока действия.
//
// Only for inspection; the result must not be trusted. Returns nil when the
// token cannot be parsed.
// Только для просмотра; результату нельзя доверять. Возвращает nil, если
// токен не разбирается.
func (s *TokenService) Decode(token string) *domain.TokenPayload {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if !claims.Type.Valid() {
		return nil
	}

	payload := claims.TokenPayload
	return &payload
}
