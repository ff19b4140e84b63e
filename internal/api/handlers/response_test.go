package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidationMessage(t *testing.T) {
	assert.Equal(t, "Task title is required", validationMessage(fmt.Errorf("%w: task title is required", service.ErrValidation)))
	assert.Equal(t, "Validation failed", validationMessage(service.ErrValidation))

	msg := validationMessage(fmt.Errorf("%w: élan is required", service.ErrValidation))
	assert.Equal(t, "Élan is required", msg)
	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, "日付 is required", validationMessage(fmt.Errorf("%w: 日付 is required", service.ErrValidation)))
}

func TestServiceErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("%w: journal content is required", service.ErrValidation), http.StatusBadRequest, "Journal content is required"},
		{service.ErrUserExists, http.StatusConflict, service.ErrUserExists.Error()},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{service.ErrForbidden, http.StatusForbidden, "Not authorized"},
		{fmt.Errorf("load: %w", service.ErrDocumentNotFound), http.StatusNotFound, "Document not found"},
		{service.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{service.ErrJournalNotFound, http.StatusNotFound, "Journal entry not found"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Something broke"},
	}

	for _, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error {
			return serviceError(c, zap.NewNop(), err, "Something broke")
		})

		resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, testErr)
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.body), string(body))
	}
}
