package sso

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/config"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/port"
)

const (
	testProject = "twitsnap-test"
	testKeyID   = "key-1"
)

type jwksFixture struct {
	key    *rsa.PrivateKey
	server *httptest.Server
	cfg    config.SSOConfig
}

func newJWKSFixture(t *testing.T) *jwksFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"kid": testKeyID,
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(server.Close)

	return &jwksFixture{
		key:    key,
		server: server,
		cfg: config.SSOConfig{
			ProjectID:  testProject,
			IssuerBase: "https://securetoken.google.com/",
			JWKSURL:    server.URL,
			ProviderID: "google.com",
		},
	}
}

func (f *jwksFixture) sign(t *testing.T, mutate func(jwt.MapClaims)) string {
	t.Helper()

	now := time.Now()
	c := jwt.MapClaims{
		"iss":            "https://securetoken.google.com/" + testProject,
		"aud":            testProject,
		"sub":            "firebase-uid-1",
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
		"email":          "erin@example.com",
		"email_verified": true,
		"name":           "Erin Smith",
		"picture":        "https://example.com/erin.png",
		"firebase":       map[string]interface{}{"sign_in_provider": "google.com"},
	}
	if mutate != nil {
		mutate(c)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, c)
	token.Header["kid"] = testKeyID
	raw, err := token.SignedString(f.key)
	require.NoError(t, err)
	return raw
}

func TestNewVerifier_RequiresProject(t *testing.T) {
	_, err := NewVerifier(config.SSOConfig{}, nil)
	require.Error(t, err)
}

func TestVerifier_VerifyAssertion(t *testing.T) {
	f := newJWKSFixture(t)
	v, err := NewVerifier(f.cfg, f.server.Client())
	require.NoError(t, err)

	claims, err := v.VerifyAssertion(context.Background(), f.sign(t, nil))

	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", claims.Subject)
	assert.Equal(t, "google.com", claims.ProviderID)
	assert.Equal(t, "erin@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "Erin Smith", claims.Name)
	assert.Equal(t, "https://example.com/erin.png", claims.Picture)
}

func TestVerifier_RejectsInvalidAssertions(t *testing.T) {
	f := newJWKSFixture(t)
	v, err := NewVerifier(f.cfg, f.server.Client())
	require.NoError(t, err)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "wrong audience",
			token: func() string { return f.sign(t, func(c jwt.MapClaims) { c["aud"] = "another-project" }) },
		},
		{
			name: "wrong issuer",
			token: func() string {
				return f.sign(t, func(c jwt.MapClaims) { c["iss"] = "https://accounts.example.com" })
			},
		},
		{
			name: "expired",
			token: func() string {
				return f.sign(t, func(c jwt.MapClaims) {
					c["iat"] = time.Now().Add(-2 * time.Hour).Unix()
					c["exp"] = time.Now().Add(-time.Hour).Unix()
				})
			},
		},
		{
			name: "foreign signature",
			token: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
					"iss": "https://securetoken.google.com/" + testProject,
					"aud": testProject,
					"sub": "firebase-uid-1",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				token.Header["kid"] = testKeyID
				raw, signErr := token.SignedString(other)
				require.NoError(t, signErr)
				return raw
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not-a-token" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.VerifyAssertion(context.Background(), tt.token())
			require.Error(t, err)
			assert.ErrorIs(t, err, port.ErrAssertionRejected)
		})
	}
}

func TestVerifier_UnreachableKeysAreNotRejections(t *testing.T) {
	f := newJWKSFixture(t)
	raw := f.sign(t, nil)
	client := f.server.Client()
	f.server.Close()

	v, err := NewVerifier(f.cfg, client)
	require.NoError(t, err)

	_, err = v.VerifyAssertion(context.Background(), raw)

	require.Error(t, err)
	assert.NotErrorIs(t, err, port.ErrAssertionRejected)
	assert.True(t, apperror.HasCode(err, apperror.CodeServiceUnavailable))
}

func TestDisabled_VerifyAssertion(t *testing.T) {
	_, err := Disabled{}.VerifyAssertion(context.Background(), "anything")
	assert.True(t, apperror.HasCode(err, apperror.CodeServiceUnavailable))
}
