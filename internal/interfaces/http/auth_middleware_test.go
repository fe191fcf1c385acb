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

	apphttp "github.com/easyrewardph/bayani/internal/interfaces/http"
	"github.com/easyrewardph/bayani/internal/domain/entity"
	pkgjwt "github.com/easyrewardph/bayani/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testDeviceID  = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "bayani-scan-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":        true,
				"role":      apphttp.GetRole(c),
				"device_id": apphttp.GetDeviceID(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testDeviceID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: La terminal tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_SupervisorAccedeRutaSupervisor(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleSupervisor)
	resp := doRequest(t, app, tokenForRole(t, entity.DeviceRoleSupervisor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"supervisor debe poder acceder a ruta restringida a supervisor")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, entity.DeviceRoleSupervisor, body["role"])
	assert.Equal(t, testDeviceID, body["device_id"],
		"el device_id del token debe quedar en locals")
}

// Caso 1b: La terminal tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ScannerAccedeRutaScannerOSupervisor(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner, entity.DeviceRoleSupervisor)
	resp := doRequest(t, app, tokenForRole(t, entity.DeviceRoleScanner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"scanner debe poder acceder a ruta que permite scanner o supervisor")
}

// Caso 2: La terminal tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ScannerBloqueadoEnRutaSupervisor(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleSupervisor)
	resp := doRequest(t, app, tokenForRole(t, entity.DeviceRoleScanner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"scanner no debe poder cerrar transferencias ni registrar terminales")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: Sin header Authorization → HTTP 401.
func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 4: Header sin esquema Bearer → HTTP 401.
func TestAuthMiddleware_EsquemaInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner)
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token firmado con otro secreto → HTTP 401.
func TestAuthMiddleware_FirmaIncorrecta_Retorna401(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner)
	tok, err := pkgjwt.Generate("otro-secreto-distinto", testDeviceID, entity.DeviceRoleScanner, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token con firma incorrecta no debe pasar el middleware")
}

// Caso 6: Token expirado → HTTP 401.
func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner)
	tok, err := pkgjwt.Generate(testJWTSecret, testDeviceID, entity.DeviceRoleScanner, testIssuer, -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 7: Token basura → HTTP 401.
func TestAuthMiddleware_TokenBasura_Retorna401(t *testing.T) {
	app := buildTestApp(entity.DeviceRoleScanner)
	resp := doRequest(t, app, "Bearer no.es.un.jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
