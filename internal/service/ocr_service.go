package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for files that are neither text, PDF nor
// a supported image.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// TextExtractor reads text from an image (or PDF) stored at path.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

var (
	textExtensions  = map[string]bool{".txt": true, ".md": true, ".csv": true}
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".tif": true, ".tiff": true, ".bmp": true}
)

type OCRService struct {
	images TextExtractor
	method string
	logger *zap.Logger
}

// NewOCRService reads PDFs locally with go-fitz and hands images to images,
// which is tesseract or a vision model. method names it in logs.
func NewOCRService(images TextExtractor, method string, logger *zap.Logger) *OCRService {
	return &OCRService{
		images: images,
		method: method,
		logger: logger,
	}
}

// ExtractText extracts text from a plain text, PDF or image file.
// Supported formats: .txt .md .csv .pdf .jpg .jpeg .png .webp .tif .tiff .bmp
func (s *OCRService) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		text   string
		method string
		err    error
	)
	switch {
	case textExtensions[ext]:
		method = "plain"
		var data []byte
		data, err = os.ReadFile(filePath)
		text = string(data)
	case ext == ".pdf":
		method = "go-fitz"
		text, err = s.extractTextFromPDF(filePath)
		if err != nil && s.images != nil {
			// scanned PDFs have no text layer
			s.logger.Info("PDF has no text layer, trying image OCR", zap.String("file", filePath), zap.Error(err))
			method = s.method
			text, err = s.images.ExtractText(ctx, filePath)
		}
	case imageExtensions[ext]:
		if s.images == nil {
			return "", fmt.Errorf("image OCR is not configured")
		}
		method = s.method
		text, err = s.images.ExtractText(ctx, filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract text with %s: %w", method, err)
	}

	text = strings.TrimSpace(sanitizeText(text))

	s.logger.Info("OCR extraction completed",
		zap.String("file", filepath.Base(filePath)),
		zap.String("method", method),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (s *OCRService) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text found in PDF")
	}
	return text, nil
}

// ExtractTextFromReader spools r to a temporary file named after fileName
// and extracts text from it.
func (s *OCRService) ExtractTextFromReader(ctx context.Context, r io.Reader, fileName, mimeType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = extensionFor(mimeType)
	}

	tmpFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return s.ExtractText(ctx, tmpFile.Name())
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	case "text/plain":
		return ".txt"
	default:
		return ".jpg"
	}
}
