// Package sso verifies identity assertions issued by an external OIDC provider.
// Пакет sso проверяет утверждения идентичности внешнего OIDC провайдера.
package sso

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Twit-Snap/users-service/internal/config"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/port"
)

// claims mirrors the ID token payload, including the Firebase extension
// that names the upstream sign-in provider.
// claims повторяет полезную нагрузку ID-токена, включая расширение Firebase
// с именем провайдера входа.
type claims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Firebase      struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
}

// Verifier implements port.IdentityVerifier with go-oidc.
// Verifier реализует port.IdentityVerifier с помощью go-oidc.
//
// Signing keys are fetched from the JWKS endpoint and cached by the key set.
// Ключи подписи загружаются с JWKS и кэшируются набором ключей.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier builds a verifier that accepts tokens issued for cfg.ProjectID.
// NewVerifier создаёт верификатор токенов, выданных для cfg.ProjectID.
func NewVerifier(cfg config.SSOConfig, httpClient *http.Client) (*Verifier, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("sso project id is not configured")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	// The key set keeps this context for every later refresh.
	// Набор ключей использует этот контекст для всех обновлений.
	keyCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	keySet := oidc.NewRemoteKeySet(keyCtx, cfg.JWKSURL)

	return &Verifier{
		verifier: oidc.NewVerifier(cfg.Issuer(), keySet, &oidc.Config{ClientID: cfg.ProjectID}),
	}, nil
}

// VerifyAssertion checks signature, issuer, audience and expiry, then decodes claims.
// VerifyAssertion проверяет подпись, издателя, аудиторию и срок, затем раскодирует утверждения.
func (v *Verifier) VerifyAssertion(ctx context.Context, rawToken string) (*port.SSOClaims, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		if isUnreachable(err) {
			return nil, apperror.ServiceUnavailable("identity provider unavailable").WithError(err)
		}
		return nil, fmt.Errorf("%w: %v", port.ErrAssertionRejected, err)
	}

	var c claims
	if err := idToken.Claims(&c); err != nil {
		return nil, fmt.Errorf("%w: malformed claims: %v", port.ErrAssertionRejected, err)
	}
	if c.Subject == "" {
		c.Subject = idToken.Subject
	}

	return &port.SSOClaims{
		Subject:       c.Subject,
		ProviderID:    c.Firebase.SignInProvider,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		GivenName:     c.GivenName,
		FamilyName:    c.FamilyName,
		Picture:       c.Picture,
	}, nil
}

// isUnreachable separates key-fetch failures from verdicts on the token itself.
// isUnreachable отделяет сбои загрузки ключей от вердикта по самому токену.
func isUnreachable(err error) bool {
	var urlErr *url.Error
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return true
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "fetching keys") || strings.Contains(msg, "get keys failed")
}

// Disabled rejects every assertion as unavailable; used when no provider is configured.
// Disabled отклоняет все утверждения как недоступные; используется без настроенного провайдера.
type Disabled struct{}

// VerifyAssertion always fails with SERVICE_UNAVAILABLE.
// VerifyAssertion всегда возвращает SERVICE_UNAVAILABLE.
func (Disabled) VerifyAssertion(context.Context, string) (*port.SSOClaims, error) {
	return nil, apperror.ServiceUnavailable("single sign-on is not configured")
}

var (
	_ port.IdentityVerifier = (*Verifier)(nil)
	_ port.IdentityVerifier = Disabled{}
)
