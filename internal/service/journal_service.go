package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/dto"
	"mindgrid/internal/models"
	"mindgrid/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrJournalNotFound = errors.New("journal entry not found")

const journalEntriesLimit = 50

type JournalService struct {
	journalRepo JournalRepository
	taskRepo    TaskRepository
	analyzer    *analysis.Analyzer
	logger      *zap.Logger
	now         func() time.Time
}

func NewJournalService(journalRepo JournalRepository, taskRepo TaskRepository, analyzer *analysis.Analyzer, logger *zap.Logger) *JournalService {
	return &JournalService{
		journalRepo: journalRepo,
		taskRepo:    taskRepo,
		analyzer:    analyzer,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateEntry analyzes the entry, stores the tasks suggested for it and
// then the entry itself.
func (s *JournalService) CreateEntry(ctx context.Context, userID uuid.UUID, req *dto.CreateJournalRequest) (*dto.CreateJournalResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: journal content is required", ErrValidation)
	}

	reading := s.analyzer.AnalyzeJournal(ctx, req.Content)
	plan := s.analyzer.SuggestTasks(ctx, req.Content)

	now := s.now()
	tasks := make([]*models.Task, 0, len(plan.Tasks))
	for _, suggestion := range plan.Tasks {
		tasks = append(tasks, &models.Task{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       suggestion.Task,
			Description: "Generated from journal: " + suggestion.Reason,
			DueDate:     suggestion.DueDate,
			Priority:    suggestion.Priority,
			Status:      models.TaskStatusPending,
			Source:      models.TaskSourceAI,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := s.taskRepo.CreateMany(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to create journal tasks: %w", err)
	}

	raw, err := json.Marshal(reading)
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal analysis: %w", err)
	}

	entryDate := now
	if req.Date != nil && !req.Date.IsZero() {
		entryDate = *req.Date
	}
	mood := reading.Mood
	journal := &models.Journal{
		ID:         uuid.New(),
		UserID:     userID,
		Content:    req.Content,
		QuickMood:  req.QuickMood,
		Mood:       &mood,
		Summary:    plan.Summary,
		EntryDate:  entryDate,
		AIAnalysis: raw,
		CreatedAt:  now,
	}
	if err := s.journalRepo.Create(ctx, journal); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.logger.Info("Journal entry created",
		zap.String("journal_id", journal.ID.String()),
		zap.Int("tasks_generated", len(tasks)),
	)

	return &dto.CreateJournalResponse{
		Message:        "Journal entry created successfully",
		Journal:        toJournalResponse(journal),
		AIAnalysis:     reading,
		GeneratedTasks: toTaskResponses(tasks),
	}, nil
}

func (s *JournalService) Analyze(ctx context.Context, content string) (*analysis.JournalAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: journal content is required", ErrValidation)
	}
	reading := s.analyzer.AnalyzeJournal(ctx, content)
	return &reading, nil
}

// ListEntries returns the latest entries, newest first.
func (s *JournalService) ListEntries(ctx context.Context, userID uuid.UUID) ([]dto.JournalResponse, error) {
	journals, err := s.journalRepo.ListRecent(ctx, userID, journalEntriesLimit)
	if err != nil {
		return nil, err
	}
	return toJournalResponses(journals), nil
}

func (s *JournalService) GetEntry(ctx context.Context, userID, id uuid.UUID) (*dto.JournalResponse, error) {
	journal, err := s.journalRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, err
	}
	resp := toJournalResponse(journal)
	return &resp, nil
}

func (s *JournalService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.journalRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJournalNotFound
		}
		return err
	}
	return nil
}
