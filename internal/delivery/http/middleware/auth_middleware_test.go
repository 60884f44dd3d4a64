package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sliders/config"
	"sliders/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, func(userID uuid.UUID, roles []string) string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	mint := func(userID uuid.UUID, roles []string) string {
		token, err := tokenSvc.GenerateAccessToken(userID, roles)
		require.NoError(t, err)

		return token
	}

	return NewAuthMiddleware(tokenSvc), mint
}

func runProtected(m *AuthMiddleware, authHeader string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"user_id": c.Get("userID").(uuid.UUID).String(),
		})
	}

	// Role checks run after authentication, mirroring route group order.
	wrapped := handler
	for i := len(extra) - 1; i >= 0; i-- {
		wrapped = extra[i](wrapped)
	}
	wrapped = m.Authenticate(wrapped)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = wrapped(c)

	return rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec := runProtected(m, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header is missing")
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	m, mint := newTestAuthMiddleware(t)
	token := mint(uuid.New(), nil)

	rec := runProtected(m, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bearer")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec := runProtected(m, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m, mint := newTestAuthMiddleware(t)
	userID := uuid.New()

	rec := runProtected(m, "Bearer "+mint(userID, []string{"athlete"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m, mint := newTestAuthMiddleware(t)
	userID := uuid.New()

	rec := runProtected(m, "Bearer "+mint(userID, []string{"athlete"}), m.RequireRole("reviewer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runProtected(m, "Bearer "+mint(userID, []string{"athlete", "reviewer"}), m.RequireRole("reviewer"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
