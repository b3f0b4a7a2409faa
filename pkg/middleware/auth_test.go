package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink/pkg/auth"
)

func serve(mw echo.MiddlewareFunc, target, authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/", mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"uid": c.Get("uid"), "role": c.Get("role")})
	}))
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWT(t *testing.T) {
	mw := JWT("test-secret", false)

	t.Run("valid bearer token passes", func(t *testing.T) {
		tok, err := auth.Issue("test-secret", 42, auth.RoleFarmer)
		require.NoError(t, err)

		rec := serve(mw, "/", "Bearer "+tok)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"uid":42`)
		assert.Contains(t, rec.Body.String(), `"role":"farmer"`)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := serve(mw, "/", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		rec := serve(mw, "/", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		tok, err := auth.Issue("other-secret", 42, auth.RoleFarmer)
		require.NoError(t, err)

		rec := serve(mw, "/", "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("dev bypass only when enabled", func(t *testing.T) {
		rec := serve(JWT("test-secret", true), "/?uid=7&role=company", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"company"`)

		rec = serve(mw, "/?uid=7&role=company", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/", RequireRole(auth.RoleCompany)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("role", c.QueryParam("as"))
			return next(c)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/?as=company", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/?as=farmer", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
