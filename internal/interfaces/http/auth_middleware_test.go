package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/invoiceflow/invoiceflow-api/internal/interfaces/http"
	pkgjwt "github.com/invoiceflow/invoiceflow-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "invoiceflow-test"
	testExpMin    = 60
)

// buildTestApp wires a minimal Fiber app with the auth middleware and a dummy
// handler that echoes the extracted user id.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

func accessToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.GenerateAccess(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ValidAccessToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, accessToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer not.a.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Refresh tokens must not authenticate API requests; only the refresh
// endpoint accepts them.
func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	tok, _, _, err := pkgjwt.GenerateRefresh(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
