package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/dto"
	"mindgrid/internal/models"
	"mindgrid/internal/repository"
	"mindgrid/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrForbidden        = errors.New("not authorized to access this resource")
)

// Placeholders stored as the document text when OCR yields nothing usable.
const (
	OCRFailedText = "OCR process failed."
	OCREmptyText  = "Text could not be extracted."
)

// DocumentReader extracts text from uploaded file content.
type DocumentReader interface {
	ExtractTextFromReader(ctx context.Context, r io.Reader, fileName, mimeType string) (string, error)
}

type DocumentService struct {
	docRepo      DocumentRepository
	reminderRepo ReminderRepository
	store        storage.ObjectStore
	ocr          DocumentReader
	analyzer     *analysis.Analyzer
	logger       *zap.Logger
	now          func() time.Time
}

func NewDocumentService(
	docRepo DocumentRepository,
	reminderRepo ReminderRepository,
	store storage.ObjectStore,
	ocr DocumentReader,
	analyzer *analysis.Analyzer,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		reminderRepo: reminderRepo,
		store:        store,
		ocr:          ocr,
		analyzer:     analyzer,
		logger:       logger,
		now:          time.Now,
	}
}

// UploadDocument stores the file, reads and analyzes it, saves the document
// and schedules a reminder for its due date.
func (s *DocumentService) UploadDocument(ctx context.Context, userID uuid.UUID, fileName string, file io.Reader) (*dto.UploadDocumentResponse, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	obj, err := s.store.Save(ctx, userID.String(), fileName, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, fmt.Errorf("%w: invalid file name", ErrValidation)
		}
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	text := s.extractText(ctx, data, fileName, obj.MimeType)
	rec := s.analyzer.AnalyzeDocument(ctx, text)

	now := s.now()
	doc := &models.Document{
		ID:            uuid.New(),
		UserID:        userID,
		FileName:      fileName,
		StorageKey:    obj.Key,
		FileURL:       s.store.URL(obj.Key),
		MimeType:      obj.MimeType,
		FileSize:      obj.Size,
		ExtractedText: text,
		Priority:      analysis.PriorityAt(now, rec.DueDate, rec.ExpiryDate),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	doc.Apply(rec)

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			s.logger.Warn("Failed to remove orphaned file", zap.String("key", obj.Key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	remindersCreated := 0
	if doc.DueDate != nil {
		if err := s.createDueReminder(ctx, doc); err != nil {
			s.logger.Warn("Failed to create reminder",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err),
			)
		} else {
			remindersCreated = 1
		}
	}

	s.logger.Info("Document processed",
		zap.String("document_id", doc.ID.String()),
		zap.String("category", string(doc.Category)),
		zap.String("priority", string(doc.Priority)),
	)

	return &dto.UploadDocumentResponse{
		Document:         toDocumentResponse(doc, true),
		RemindersCreated: remindersCreated,
	}, nil
}

// extractText never fails: OCR errors and empty output become placeholders.
func (s *DocumentService) extractText(ctx context.Context, data []byte, fileName, mimeType string) string {
	text, err := s.ocr.ExtractTextFromReader(ctx, bytes.NewReader(data), fileName, mimeType)
	if err != nil {
		s.logger.Warn("OCR extraction failed", zap.String("file", fileName), zap.Error(err))
		return OCRFailedText
	}
	text = sanitizeText(text)
	if text == "" {
		return OCREmptyText
	}
	return text
}

func (s *DocumentService) createDueReminder(ctx context.Context, doc *models.Document) error {
	amount := "N/A"
	if doc.Amount != nil {
		amount = strconv.FormatFloat(*doc.Amount, 'f', -1, 64)
	}

	docID := doc.ID
	return s.reminderRepo.Create(ctx, &models.Reminder{
		ID:           uuid.New(),
		UserID:       doc.UserID,
		DocumentID:   &docID,
		Title:        fmt.Sprintf("Due: %s", doc.DocumentType),
		Description:  fmt.Sprintf("Amount: %s - %s", amount, doc.Summary),
		ReminderDate: *doc.DueDate,
		Type:         models.ReminderTypeDueDate,
		Status:       models.ReminderStatusPending,
		CreatedAt:    s.now(),
	})
}

// ListDocuments lists the user's documents, newest first.
func (s *DocumentService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]dto.DocumentResponse, error) {
	docs, err := s.docRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = toDocumentResponse(doc, false)
	}
	return responses, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	resp := toDocumentResponse(doc, true)
	return &resp, nil
}

// DocumentFile is an open stored upload. Callers close it.
type DocumentFile struct {
	io.ReadCloser
	FileName string
	MimeType string
}

// OpenFile returns the stored upload of a document the user owns.
func (s *DocumentService) OpenFile(ctx context.Context, userID, documentID uuid.UUID) (*DocumentFile, error) {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	rc, err := s.store.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Stored file missing", zap.String("document_id", doc.ID.String()), zap.String("key", doc.StorageKey))
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return &DocumentFile{ReadCloser: rc, FileName: doc.FileName, MimeType: doc.MimeType}, nil
}

// DeleteDocument removes the stored file, the document's reminders and the
// record itself.
func (s *DocumentService) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Failed to delete stored file", zap.String("key", doc.StorageKey), zap.Error(err))
	}

	removed, err := s.reminderRepo.DeleteByDocumentID(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to delete reminders: %w", err)
	}

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	s.logger.Info("Document deleted",
		zap.String("document_id", doc.ID.String()),
		zap.Int64("reminders_removed", removed),
	)
	return nil
}

func (s *DocumentService) Stats(ctx context.Context, userID uuid.UUID) (*dto.DocumentStatsResponse, error) {
	stats, err := s.docRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DocumentStatsResponse{
		Total:      stats.Total,
		ByCategory: make(map[string]int, len(analysis.Categories)),
		ByPriority: map[string]int{
			string(analysis.PriorityHigh):   0,
			string(analysis.PriorityMedium): 0,
			string(analysis.PriorityLow):    0,
		},
	}
	for _, c := range analysis.Categories {
		resp.ByCategory[string(c)] = 0
	}
	for c, n := range stats.ByCategory {
		resp.ByCategory[string(c)] += n
	}
	for p, n := range stats.ByPriority {
		resp.ByPriority[string(p)] += n
	}
	return resp, nil
}

func (s *DocumentService) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.docRepo.CountByUserID(ctx, userID)
}

// AnalyzeText runs the analysis core on raw text without storing anything.
func (s *DocumentService) AnalyzeText(ctx context.Context, text string) dto.AnalysisResponse {
	rec := s.analyzer.AnalyzeDocument(ctx, text)
	return toAnalysisResponse(rec, analysis.PriorityAt(s.now(), rec.DueDate, rec.ExpiryDate))
}

func (s *DocumentService) ownedDocument(ctx context.Context, userID, documentID uuid.UUID) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, ErrForbidden
	}
	return doc, nil
}
