package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/DonnyDianderas/dcp-inventory-api/internal/interfaces/http"
)

// La sesión validada queda en Locals: GetUserID/GetUsername deben devolver
// los claims del token después del middleware.
func TestAuthMiddleware_CargaSesionEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/quien-soy", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
		})
	})

	resp := doJSON(t, app, http.MethodGet, "/quien-soy", authToken(t), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "tester", body["username"])
}

func TestAuthMiddleware_FormatoNoBearer_401(t *testing.T) {
	app := fiber.New()
	app.Get("/quien-soy", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp := doJSON(t, app, http.MethodGet, "/quien-soy", "Basic dXNlcjpwYXNz", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}
