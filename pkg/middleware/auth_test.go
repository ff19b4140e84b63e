package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"mindgrid/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(m *auth.JWTManager) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthMiddleware(m, zap.NewNop()), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(id.String() + "|" + c.Locals(LocalEmail).(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Hour, time.Hour)
	app := newApp(m)
	id := uuid.New()

	access, err := m.GenerateToken(id.String(), "Ada", "ada@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(id.String())
	require.NoError(t, err)
	badSubject, err := m.GenerateToken("not-a-uuid", "Ada", "ada@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc", fiber.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, fiber.StatusUnauthorized},
		{"non uuid subject", "Bearer " + badSubject, fiber.StatusUnauthorized},
		{"bearer", "Bearer " + access, fiber.StatusOK},
		{"bare token", access, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, id.String()+"|ada@example.com", string(body))
			}
		})
	}
}
