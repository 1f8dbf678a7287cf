package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-prueba-con-largo-suficiente"
	testIssuer    = "almacen-api"
	testExpMin    = 60
	testUserID    = "user-123"
)

// newAuthTestApp monta un endpoint protegido con AuthMiddleware y, si se
// indican roles, también RequireRole.
func newAuthTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddleware(testJWTSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	group := app.Group("/protegido", handlers...)
	group.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": GetUserID(c),
			"role":    GetRole(c),
		})
	})
	return app
}

func mustToken(t *testing.T, role string) string {
	t.Helper()
	token, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protegido/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

func TestAuthMiddleware_TokenValidoExtraeClaims(t *testing.T) {
	app := newAuthTestApp()
	status, body := doRequest(t, app, "Bearer "+mustToken(t, "admin"))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := newAuthTestApp()
	status, body := doRequest(t, app, "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := newAuthTestApp()

	status, body := doRequest(t, app, "Basic abc123")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])

	status, _ = doRequest(t, app, "Bearer")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_TokenAdulterado(t *testing.T) {
	app := newAuthTestApp()
	status, body := doRequest(t, app, "Bearer "+mustToken(t, "admin")+"x")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	otro, err := pkgjwt.Generate("otro-secreto-distinto-al-del-server", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	app := newAuthTestApp()
	status, _ := doRequest(t, app, "Bearer "+otro)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -5)
	require.NoError(t, err)

	app := newAuthTestApp()
	status, body := doRequest(t, app, "Bearer "+expirado)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestRequireRole_RolPermitido(t *testing.T) {
	app := newAuthTestApp("admin")
	status, _ := doRequest(t, app, "Bearer "+mustToken(t, "admin"))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_VariosRoles(t *testing.T) {
	app := newAuthTestApp("admin", "bodeguero")
	status, _ := doRequest(t, app, "Bearer "+mustToken(t, "bodeguero"))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_RolSinAcceso(t *testing.T) {
	app := newAuthTestApp("admin")
	status, body := doRequest(t, app, "Bearer "+mustToken(t, "vendedor"))

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := newAuthTestApp("admin")
	status, body := doRequest(t, app, "Bearer "+mustToken(t, ""))

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

func TestJWT_GenerarYParsear(t *testing.T) {
	token := mustToken(t, "vendedor")

	userID, role, err := pkgjwt.Parse(testJWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "vendedor", role)
}
