package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "backoffice-test"
	testCookie    = "token"
)

var testIdentity = pkgjwt.Identity{
	ID:    "00000000-0000-0000-0000-000000000001",
	Email: "admin@example.com",
	Name:  "Admin",
	Role:  "ADMIN",
}

func testCodec(t *testing.T) *pkgjwt.Codec {
	t.Helper()
	c, err := pkgjwt.NewCodec(testJWTSecret, testIssuer, pkgjwt.DefaultTTL)
	require.NoError(t, err)
	return c
}

// buildGateApp aplicación mínima: el gate con las reglas por defecto y un handler
// dummy que devuelve la identidad cargada.
func buildGateApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(apphttp.AccessGate(testCodec(t), testCookie, apphttp.DefaultGateRules()))
	app.Use(func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": apphttp.GetIdentity(c).ID})
	})
	return app
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := testCodec(t).Issue(testIdentity)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func withCookie(tok string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: testCookie, Value: tok}) }
}

func TestMatch_PrimeraReglaGana(t *testing.T) {
	rules := apphttp.DefaultGateRules()

	cases := []struct {
		path string
		want apphttp.Requirement
		ok   bool
	}{
		{"/api/auth/login", apphttp.Public, true},
		{"/api/auth/logout", apphttp.Public, true},
		{"/api/auth/me", apphttp.APISession, true},
		{"/api", apphttp.APISession, true},
		{"/api/products/123", apphttp.APISession, true},
		{"/dashboard", apphttp.PageSession, true},
		{"/invoices/abc/edit", apphttp.PageSession, true},
		{"/API/products", apphttp.APISession, true},
		{"/Dashboard", apphttp.PageSession, true},
		{"/API/Auth/Login", apphttp.Public, true},
		{"/productsx", 0, false},
		{"/apiary", 0, false},
		{"/login", 0, false},
		{"/assets/app.js", 0, false},
	}
	for _, tc := range cases {
		rule, ok := apphttp.Match(rules, tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		if tc.ok {
			assert.Equal(t, tc.want, rule.Requirement, tc.path)
		}
	}
}

func TestAccessGate_APISinToken401(t *testing.T) {
	resp := get(t, buildGateApp(t), "/api/products", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestAccessGate_PaginaSinTokenRedirige(t *testing.T) {
	resp := get(t, buildGateApp(t), "/dashboard", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, apphttp.LoginPath, resp.Header.Get("Location"))
}

func TestAccessGate_TokenInvalidoEnPagina(t *testing.T) {
	resp := get(t, buildGateApp(t), "/settings", withCookie("no-es-un-jwt"))
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestAccessGate_CookieValida(t *testing.T) {
	resp := get(t, buildGateApp(t), "/api/products", withCookie(validToken(t)))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testIdentity.ID, body["id"])
}

func TestAccessGate_BearerComoAlternativa(t *testing.T) {
	tok := validToken(t)
	resp := get(t, buildGateApp(t), "/api/auth/me", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAccessGate_RutasPublicasYNoCubiertas(t *testing.T) {
	app := buildGateApp(t)
	for _, p := range []string{"/api/auth/login", "/api/auth/logout", "/login", "/health", "/assets/app.js"} {
		resp := get(t, app, p, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, p)
	}
}

func TestAccessGate_TokenDeOtroSecret(t *testing.T) {
	other, err := pkgjwt.NewCodec("otro-secret-completamente-distinto", testIssuer, pkgjwt.DefaultTTL)
	require.NoError(t, err)
	tok, err := other.Issue(testIdentity)
	require.NoError(t, err)

	resp := get(t, buildGateApp(t), "/api/dashboard/stats", withCookie(tok))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAccessGate_MayusculasNoSaltanElGate(t *testing.T) {
	app := buildGateApp(t)
	for _, p := range []string{"/API/products", "/Api/dashboard/stats", "/api/PRODUCTS/123"} {
		resp := get(t, app, p, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, p)
	}
	resp := get(t, app, "/DASHBOARD", nil)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
