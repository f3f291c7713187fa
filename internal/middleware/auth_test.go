package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/admin/ping", AdminRequired("secret-token"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestAdminRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"valid header", "secret-token", "", http.StatusOK},
		{"valid query param", "", "?token=secret-token", http.StatusOK},
		{"missing credential", "", "", http.StatusForbidden},
		{"wrong header", "wrong", "", http.StatusForbidden},
		{"wrong query param", "", "?token=wrong", http.StatusForbidden},
		{"header wins over query", "secret-token", "?token=wrong", http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := adminTestApp(t)

			req := httptest.NewRequest(http.MethodGet, "/admin/ping"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("X-Admin-Token", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
