package handlers

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"mindgrid/internal/service"
	"mindgrid/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// serviceError maps service sentinels to HTTP statuses. Anything else is
// logged and answered with 500 and fallback.
func serviceError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest, validationMessage(err))
	case errors.Is(err, service.ErrUserExists):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "Not authorized")
	case errors.Is(err, service.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrTaskNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrJournalNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Journal entry not found")
	}

	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}

func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, service.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(service.ErrValidation.Error())+2:]
	}
	if msg == "" {
		return "Invalid request"
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
