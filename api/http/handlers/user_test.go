package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	apphttp "github.com/WalkerBel92/evaluation/api/http"
	"github.com/WalkerBel92/evaluation/api/http/handlers"
	"github.com/WalkerBel92/evaluation/pkg/health"
	"github.com/WalkerBel92/evaluation/pkg/repository/memory"
	"github.com/WalkerBel92/evaluation/pkg/security/jwt"
	"github.com/WalkerBel92/evaluation/pkg/user"
)

func newApp() *fiber.App {
	app := fiber.New()
	repo := memory.NewUserRepository()
	svc := user.NewService(repo, jwt.NewGenerator("secret", 24*time.Hour))
	noLimit := func(c *fiber.Ctx) error { return c.Next() }
	apphttp.Register(app, handlers.NewUserHandler(svc), handlers.NewHealthHandler(health.NewService()), noLimit)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return resp, nil
	}
	return resp, decoded
}

const anaBody = `{"name":"Ana","email":"ana@x.com","password":"Abcdef1!","phones":[{"number":"1234567","cityCode":"1","countryCode":"57"}]}`

func TestRegisterEndpoint(t *testing.T) {
	app := newApp()

	resp, body := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["id"])
	require.NotEmpty(t, body["token"])
	require.Equal(t, true, body["isActive"])
	require.NotEmpty(t, body["created"])
	require.NotEmpty(t, body["modified"])
	require.NotEmpty(t, body["lastLogin"])
	// the creation response never echoes credentials
	require.NotContains(t, body, "password")
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	app := newApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "El correo ya registrado", body["mensaje"])
}

func TestRegisterValidationEndpoint(t *testing.T) {
	app := newApp()

	resp, body := doJSON(t, app, http.MethodPost, "/users/", `{"name":"","email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Nombre requerido", body["name"])
	require.Equal(t, "Formato de correo electrónico inválido", body["email"])
	require.NotEmpty(t, body["password"])
}

func TestListEndpoint(t *testing.T) {
	app := newApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/users/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	require.Equal(t, "ana@x.com", users[0]["email"])
}

func TestGetByIDEndpoint(t *testing.T) {
	app := newApp()

	_, created := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	id := created["id"].(string)

	resp, body := doJSON(t, app, http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ana@x.com", body["email"])

	resp, body = doJSON(t, app, http.MethodGet, "/users/6a5e9d8e-0000-0000-0000-000000000000", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Usuario no encontrado", body["mensaje"])

	resp, body = doJSON(t, app, http.MethodGet, "/users/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "UUID inválido", body["mensaje"])
}

func TestUpdateEndpoint(t *testing.T) {
	app := newApp()

	_, created := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	id := created["id"].(string)

	resp, body := doJSON(t, app, http.MethodPatch, "/users/"+id, `{"name":"X"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "X", body["name"])
	require.Equal(t, "ana@x.com", body["email"])
	require.Equal(t, created["token"], body["token"])

	resp, body = doJSON(t, app, http.MethodPatch, "/users/6a5e9d8e-0000-0000-0000-000000000000", `{"name":"X"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Usuario no encontrado", body["mensaje"])
}

func TestUpdateRejectsInvalidFields(t *testing.T) {
	app := newApp()

	_, created := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	id := created["id"].(string)

	// present-but-invalid fields fail even on PATCH
	resp, body := doJSON(t, app, http.MethodPatch, "/users/"+id, `{"email":"bad"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Formato de correo electrónico inválido", body["email"])
}

func TestDeleteEndpoint(t *testing.T) {
	app := newApp()

	_, created := doJSON(t, app, http.MethodPost, "/users/", anaBody)
	id := created["id"].(string)

	resp, _ := doJSON(t, app, http.MethodDelete, "/users/"+id, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/users/"+id, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Usuario no encontrado", body["mensaje"])

	resp, _ = doJSON(t, app, http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	app := newApp()

	resp, body := doJSON(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])

	resp, body = doJSON(t, app, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ready", body["status"])
}
