package handlers

import (
	"mindgrid/internal/dto"
	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type JournalHandler struct {
	journalService *service.JournalService
	logger         *zap.Logger
}

func NewJournalHandler(journalService *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// CreateEntry godoc
// @Summary Write a journal entry
// @Description Stores the entry with its mood reading and the tasks generated from it
// @Tags journal
// @Accept json
// @Produce json
// @Param request body dto.CreateJournalRequest true "Journal entry"
// @Security Bearer
// @Success 201 {object} dto.CreateJournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/journal/create [post]
func (h *JournalHandler) CreateEntry(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.journalService.CreateEntry(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create journal entry")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AnalyzeEntry godoc
// @Summary Read the mood of a text
// @Description Analyzes journal text without storing it
// @Tags journal
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeJournalRequest true "Journal text"
// @Security Bearer
// @Success 200 {object} analysis.JournalAnalysis
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/journal/analyze [post]
func (h *JournalHandler) AnalyzeEntry(c *fiber.Ctx) error {
	var req dto.AnalyzeJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	reading, err := h.journalService.Analyze(c.Context(), req.Content)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to analyze journal entry")
	}

	return c.JSON(reading)
}

// ListEntries godoc
// @Summary List journal entries
// @Tags journal
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.JournalResponse
// @Router /api/journal/entries [get]
func (h *JournalHandler) ListEntries(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entries, err := h.journalService.ListEntries(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list journal entries")
	}

	return c.JSON(entries)
}

// GetEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Security Bearer
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/journal/entries/{id} [get]
func (h *JournalHandler) GetEntry(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entryID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Journal entry not found")
	}

	entry, err := h.journalService.GetEntry(c.Context(), userID, entryID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load journal entry")
	}

	return c.JSON(entry)
}

// DeleteEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/journal/entries/{id} [delete]
func (h *JournalHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entryID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Journal entry not found")
	}

	if err := h.journalService.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete journal entry")
	}

	return c.JSON(dto.MessageResponse{Message: "Journal entry deleted"})
}
