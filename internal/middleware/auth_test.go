// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/uni-events/internal/core"
)

type fakeVerifier struct {
	calls  int
	claims *AccessTokenClaims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*AccessTokenClaims, error) {
	f.calls++
	return f.claims, f.err
}

func echoClaims(w http.ResponseWriter, r *http.Request) {
	core.OK(w, map[string]string{
		"user_id":       GetUserID(r.Context()),
		"role":          GetUserRole(r.Context()),
		"university_id": GetUniversityID(r.Context()),
	})
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorResponse {
	t.Helper()
	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthenticatorMissingToken(t *testing.T) {
	v := &fakeVerifier{}
	h := Authenticator(v)(http.HandlerFunc(echoClaims))

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		rec := serve(h, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
	}

	assert.Zero(t, v.calls, "verifier must not run without a token")
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	cases := map[string]struct {
		err  error
		code string
	}{
		"invalid": {fmt.Errorf("verify: %w", core.ErrTokenInvalid), "TOKEN_INVALID"},
		"expired": {fmt.Errorf("verify: %w", core.ErrTokenExpired), "TOKEN_EXPIRED"},
		"revoked": {fmt.Errorf("verify: %w", core.ErrTokenRevoked), "TOKEN_REVOKED"},
		"opaque":  {fmt.Errorf("boom"), "TOKEN_INVALID"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := Authenticator(&fakeVerifier{err: tc.err})(http.HandlerFunc(echoClaims))

			rec := serve(h, "Bearer some.jwt.value")

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Code)
		})
	}
}

func TestAuthenticatorAttachesClaims(t *testing.T) {
	v := &fakeVerifier{claims: &AccessTokenClaims{
		UserID:       "u-1",
		Role:         RoleStudent,
		UniversityID: "uni-1",
	}}
	h := Authenticator(v)(http.HandlerFunc(echoClaims))

	rec := serve(h, "bearer good.jwt.value")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, RoleStudent, body["role"])
	assert.Equal(t, "uni-1", body["university_id"])
}

func TestRequireSuperAdmin(t *testing.T) {
	for _, tc := range []struct {
		role string
		want int
	}{
		{RoleStudent, http.StatusForbidden},
		{RoleAdmin, http.StatusForbidden},
		{RoleSuperAdmin, http.StatusOK},
	} {
		v := &fakeVerifier{claims: &AccessTokenClaims{UserID: "u", Role: tc.role}}
		h := Authenticator(v)(RequireSuperAdmin(http.HandlerFunc(echoClaims)))

		rec := serve(h, "Bearer t")
		assert.Equal(t, tc.want, rec.Code, "role %s", tc.role)
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	h := RequireRole(RoleAdmin)(http.HandlerFunc(echoClaims))

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
