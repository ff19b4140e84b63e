package handlers

import (
	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
}

func NewReminderHandler(reminderService *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// ListReminders godoc
// @Summary List reminders
// @Description The user's reminders, soonest first
// @Tags reminders
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ReminderResponse
// @Router /api/reminders [get]
func (h *ReminderHandler) ListReminders(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	reminders, err := h.reminderService.ListReminders(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list reminders")
	}

	return c.JSON(reminders)
}
