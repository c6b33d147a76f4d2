package port

import (
	"context"
	"errors"
)

// ErrAssertionRejected marks a provider verdict that the assertion is not
// valid (bad signature, wrong audience, expired). Other verifier errors are
// infrastructure failures.
// ErrAssertionRejected обозначает отказ провайдера признать утверждение
// действительным. Остальные ошибки верификатора - сбои инфраструктуры.
var ErrAssertionRejected = errors.New("identity assertion rejected")

// SSOClaims is the decoded claim set of a verified assertion.
// SSOClaims - раскодированный набор утверждений после проверки.
type SSOClaims struct {
	Subject       string // Provider subject id / Id субъекта у провайдера
	ProviderID    string // Sign-in provider / Провайдер входа
	Email         string // Email / Электронная почта
	EmailVerified bool   // Email verified by provider / Email подтверждён провайдером
	Name          string // Display name / Отображаемое имя
	GivenName     string // Given name / Имя
	FamilyName    string // Family name / Фамилия
	Picture       string // Avatar URL / URL аватара
}

// IdentityVerifier verifies provider-issued identity assertions.
// IdentityVerifier проверяет утверждения идентичности, выданные провайдером.
type IdentityVerifier interface {
	// VerifyAssertion returns the claims of a valid assertion.
	// VerifyAssertion возвращает утверждения действительного токена.
	VerifyAssertion(ctx context.Context, rawToken string) (*SSOClaims, error)
}
