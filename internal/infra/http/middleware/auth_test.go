package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-cursos/internal/infra/http/middleware"
)

func signToken(t *testing.T, secret, role string, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub":  "user-123",
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedEndpoint(secret string, roles ...string) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.UserFromContext(r.Context())
		w.Write([]byte("ok:" + user.Role))
	})

	if len(roles) > 0 {
		handler = middleware.RequireRoles(roles...)(handler)
	}
	return middleware.Authenticate(secret)(handler)
}

func TestAuthenticateMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()

	protectedEndpoint("secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	protectedEndpoint("secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "agent", -time.Hour))
	rec := httptest.NewRecorder()

	protectedEndpoint("secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "agent", time.Hour))
	rec := httptest.NewRecorder()

	protectedEndpoint("secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "agent", time.Hour))
	rec := httptest.NewRecorder()

	protectedEndpoint("secret").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok:agent", rec.Body.String())
}

func TestRequireRolesDeniesAgent(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/leads/15551234567", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "agent", time.Hour))
	rec := httptest.NewRecorder()

	protectedEndpoint("secret", "admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/leads/15551234567", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "admin", time.Hour))
	rec := httptest.NewRecorder()

	protectedEndpoint("secret", "admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
