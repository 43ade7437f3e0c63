// AngelaMos | 2026
// authtest.go

// Package authtest builds real ES256 token managers for handler tests.
package authtest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/config"
)

func Config() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire: time.Hour,
		Issuer:            "uni-events",
		Audience:          "uni-events-api",
	}
}

func NewManager(t testing.TB) *auth.JWTManager {
	t.Helper()
	return NewManagerWithConfig(t, Config())
}

func NewManagerWithConfig(t testing.TB, cfg config.JWTConfig) *auth.JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := auth.NewJWTManagerFromKey(key, cfg)
	require.NoError(t, err)
	return m
}

// Bearer returns an Authorization header value for the given identity.
func Bearer(
	t testing.TB,
	m *auth.JWTManager,
	userID, role, universityID string,
) string {
	t.Helper()

	tok, err := m.CreateAccessToken(auth.AccessTokenClaims{
		UserID:       userID,
		Role:         role,
		UniversityID: universityID,
	})
	require.NoError(t, err)
	return "Bearer " + tok.Token
}
