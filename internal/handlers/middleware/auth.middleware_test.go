package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanconnect/config"
	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	user models.User
	err  error
}

func (s stubAuthenticator) Authenticate(context.Context, string) (models.User, error) {
	return s.user, s.err
}

func serve(t *testing.T, auth Authenticator, header string) (int, map[string]any) {
	t.Helper()

	app := fiber.New()
	m := New(config.Config{}, auth)
	app.Get("/me", m.RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "id": GetUser(c).ID})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRequireAuth(t *testing.T) {
	rejected := fmt.Errorf("%w: Invalid token", types.ErrUnauthorized)

	tests := []struct {
		name    string
		auth    stubAuthenticator
		header  string
		status  int
		message string
	}{
		{
			name:   "valid token",
			auth:   stubAuthenticator{user: models.User{ID: "client-1", Role: models.RoleClient}},
			header: "Bearer client-secret-token",
			status: http.StatusOK,
		},
		{
			name:    "missing header",
			header:  "",
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "wrong scheme",
			header:  "Basic abc",
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "rejected token",
			auth:    stubAuthenticator{err: rejected},
			header:  "Bearer nope",
			status:  http.StatusUnauthorized,
			message: "Unauthorized",
		},
		{
			name:    "store failure",
			auth:    stubAuthenticator{err: errors.New("connection refused")},
			header:  "Bearer client-secret-token",
			status:  http.StatusInternalServerError,
			message: "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, tt.auth, tt.header)
			assert.Equal(t, tt.status, status)
			if tt.message != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.message, body["error"])
				return
			}
			assert.Equal(t, "client-1", body["id"])
		})
	}
}
