package handlers

import (
	"mindgrid/internal/dto"
	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// UploadDocument godoc
// @Summary Upload a document
// @Description Store an image or PDF, read it, classify it and schedule a reminder for its due date
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file (image or PDF)"
// @Security Bearer
// @Success 201 {object} dto.UploadDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/documents/upload [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	resp, err := h.docService.UploadDocument(c.Context(), userID, file.Filename, src)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to upload document")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListDocuments godoc
// @Summary List documents
// @Description The user's documents, newest first
// @Tags documents
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	docs, err := h.docService.ListDocuments(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list documents")
	}

	return c.JSON(docs)
}

// Stats godoc
// @Summary Document statistics
// @Description Total documents and counts by category and by priority
// @Tags documents
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DocumentStatsResponse
// @Router /api/documents/stats [get]
func (h *DocumentHandler) Stats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	stats, err := h.docService.Stats(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load document stats")
	}

	return c.JSON(stats)
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} dto.DocumentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	documentID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Document not found")
	}

	doc, err := h.docService.GetDocument(c.Context(), userID, documentID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load document")
	}

	return c.JSON(doc)
}

// DownloadDocument godoc
// @Summary Download a document's file
// @Description Streams the originally uploaded file
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/documents/{id}/file [get]
func (h *DocumentHandler) DownloadDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	documentID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Document not found")
	}

	file, err := h.docService.OpenFile(c.Context(), userID, documentID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to open document file")
	}

	c.Attachment(file.FileName)
	if file.MimeType != "" {
		c.Set(fiber.HeaderContentType, file.MimeType)
	}
	// SendStream closes the file once the body is written.
	return c.SendStream(file)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Removes the stored file, its reminders and the record
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	documentID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Document not found")
	}

	if err := h.docService.DeleteDocument(c.Context(), userID, documentID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete document")
	}

	return c.JSON(dto.MessageResponse{Message: "Document deleted"})
}
