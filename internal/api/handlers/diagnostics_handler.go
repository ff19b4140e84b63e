package handlers

import (
	"errors"
	"time"

	"mindgrid/internal/dto"
	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DiagnosticsHandler serves liveness and the analysis test endpoints. None
// of its routes persist anything.
type DiagnosticsHandler struct {
	docService *service.DocumentService
	ocrService service.DocumentReader
	logger     *zap.Logger
	now        func() time.Time
}

func NewDiagnosticsHandler(docService *service.DocumentService, ocrService service.DocumentReader, logger *zap.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		docService: docService,
		ocrService: ocrService,
		logger:     logger,
		now:        time.Now,
	}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *DiagnosticsHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// Root godoc
// @Summary Service banner
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *DiagnosticsHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "MindGrid API is running",
		"docs":    "/swagger/index.html",
	})
}

// TestAI godoc
// @Summary Analyze document text
// @Description Runs document analysis and priority scoring without storing anything
// @Tags test
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeTextRequest true "Document text"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/test/ai [post]
func (h *DiagnosticsHandler) TestAI(c *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil || req.Text == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Text is required")
	}

	return c.JSON(h.docService.AnalyzeText(c.Context(), req.Text))
}

// TestOCR godoc
// @Summary Extract text from a file
// @Tags test
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or PDF"
// @Success 200 {object} dto.OCRResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/test/ocr [post]
func (h *DiagnosticsHandler) TestOCR(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	text, err := h.ocrService.ExtractTextFromReader(c.Context(), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFormat) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("OCR test failed", zap.Error(err), zap.String("file", file.Filename))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to extract text")
	}

	return c.JSON(dto.OCRResponse{
		FileName: file.Filename,
		Text:     text,
		Length:   len(text),
	})
}
