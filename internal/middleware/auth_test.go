package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret, role string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func requestWithAuth(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminAuth(t *testing.T) {
	mw := AdminAuth(testSecret)
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("valid admin token passes", func(t *testing.T) {
		c, rec := requestWithAuth("Bearer " + signToken(t, testSecret, "admin", time.Now().Add(time.Hour)))

		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin@example.com", c.Get("admin_subject"))
	})

	t.Run("missing header", func(t *testing.T) {
		c, _ := requestWithAuth("")

		err := mw(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		c, _ := requestWithAuth("Bearer " + signToken(t, "other-secret", "admin", time.Now().Add(time.Hour)))

		err := mw(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		c, _ := requestWithAuth("Bearer " + signToken(t, testSecret, "admin", time.Now().Add(-time.Hour)))

		err := mw(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("non-admin role", func(t *testing.T) {
		c, _ := requestWithAuth("Bearer " + signToken(t, testSecret, "customer", time.Now().Add(time.Hour)))

		err := mw(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}
