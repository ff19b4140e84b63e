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

var ErrTaskNotFound = errors.New("task not found")

const (
	upcomingWindow       = 7 * 24 * time.Hour
	upcomingLimit        = 10
	recentJournalsLimit  = 5
	defaultGeneratedTask = "Review document"
)

type TaskService struct {
	taskRepo    TaskRepository
	journalRepo JournalRepository
	docRepo     DocumentRepository
	analyzer    *analysis.Analyzer
	logger      *zap.Logger
	now         func() time.Time
}

func NewTaskService(
	taskRepo TaskRepository,
	journalRepo JournalRepository,
	docRepo DocumentRepository,
	analyzer *analysis.Analyzer,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		journalRepo: journalRepo,
		docRepo:     docRepo,
		analyzer:    analyzer,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}

	status := models.TaskStatusPending
	if req.Status != "" {
		status = models.TaskStatus(strings.ToUpper(req.Status))
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
	}

	task := s.newTask(userID, title, req.Description, req.DueDate, analysis.NormalizePriority(req.Priority), models.TaskSourceUser)
	task.Status = status

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

// ListTasks filters by status and priority, both case-insensitive.
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID, status, priority string) ([]dto.TaskResponse, error) {
	filter := models.TaskFilter{
		Status:   models.TaskStatus(strings.ToUpper(strings.TrimSpace(status))),
		Priority: analysis.Priority(strings.ToUpper(strings.TrimSpace(priority))),
	}

	tasks, err := s.taskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *TaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.getTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.getTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: task title cannot be empty", ErrValidation)
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		p := analysis.Priority(strings.ToUpper(strings.TrimSpace(*req.Priority)))
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *req.Priority)
		}
		task.Priority = p
	}
	if req.Status != nil {
		status := models.TaskStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		task.Status = status
	}
	task.UpdatedAt = s.now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// GenerateFromText analyzes text as a document and stores a single AI task
// for it.
func (s *TaskService) GenerateFromText(ctx context.Context, userID uuid.UUID, text string) (*dto.GenerateTaskResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: provide text to analyze", ErrValidation)
	}

	rec := s.analyzer.AnalyzeDocument(ctx, text)
	priority := analysis.PriorityAt(s.now(), rec.DueDate, rec.ExpiryDate)

	title := strings.TrimSpace(rec.Summary)
	if title == "" {
		title = defaultGeneratedTask
	}
	idNumber := "N/A"
	if rec.IDNumber != nil {
		idNumber = *rec.IDNumber
	}
	description := fmt.Sprintf("Auto-generated task based on document analysis. Provider: %s. ID: %s", rec.Provider, idNumber)

	dueDate := rec.DueDate
	if dueDate == nil {
		dueDate = rec.ExpiryDate
	}

	task := s.newTask(userID, title, description, dueDate, priority, models.TaskSourceAI)
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &dto.GenerateTaskResponse{
		Task:     toTaskResponse(task),
		Analysis: toAnalysisResponse(rec, priority),
	}, nil
}

// PreviewJournalTasks suggests tasks for a journal entry without storing
// anything.
func (s *TaskService) PreviewJournalTasks(ctx context.Context, journalText string) (*dto.TaskPreviewResponse, error) {
	if strings.TrimSpace(journalText) == "" {
		return nil, fmt.Errorf("%w: please provide your thoughts or journal entry", ErrValidation)
	}
	preview := toTaskPreview(s.analyzer.SuggestTasks(ctx, journalText))
	return &preview, nil
}

// ClarifyJournalTasks re-runs the suggestions with the user's answers to
// the follow-up questions.
func (s *TaskService) ClarifyJournalTasks(ctx context.Context, req *dto.ClarifyTasksRequest) (*dto.TaskPreviewResponse, error) {
	if strings.TrimSpace(req.JournalText) == "" {
		return nil, fmt.Errorf("%w: journalText is required", ErrValidation)
	}

	answers := make([]analysis.ClarificationAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, analysis.ClarificationAnswer{Question: a.Question, Answer: a.Answer})
	}

	preview := toTaskPreview(s.analyzer.ClarifyTasks(ctx, req.JournalText, answers))
	return &preview, nil
}

// ConfirmJournalTasks stores the accepted suggestions and, when the journal
// text is sent along, archives it as a journal entry.
func (s *TaskService) ConfirmJournalTasks(ctx context.Context, userID uuid.UUID, req *dto.ConfirmTasksRequest) (*dto.ConfirmTasksResponse, error) {
	if len(req.Tasks) == 0 {
		return nil, fmt.Errorf("%w: no tasks to create", ErrValidation)
	}

	tasks := make([]*models.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			continue
		}
		tasks = append(tasks, s.newTask(userID, title, t.Description, t.DueDate, analysis.NormalizePriority(t.Priority), models.TaskSourceAI))
	}

	if err := s.taskRepo.CreateMany(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to create tasks: %w", err)
	}

	resp := &dto.ConfirmTasksResponse{
		Message: fmt.Sprintf("%d tasks created from journal", len(tasks)),
		Tasks:   toTaskResponses(tasks),
	}

	if strings.TrimSpace(req.JournalText) != "" {
		journal, err := s.archiveJournal(ctx, userID, req)
		if err != nil {
			s.logger.Warn("Failed to persist journal", zap.Error(err))
		} else {
			j := toJournalResponse(journal)
			resp.Journal = &j
		}
	}

	return resp, nil
}

func (s *TaskService) archiveJournal(ctx context.Context, userID uuid.UUID, req *dto.ConfirmTasksRequest) (*models.Journal, error) {
	archived := struct {
		Summary         string   `json:"summary"`
		Mood            *string  `json:"mood"`
		Priorities      []string `json:"priorities"`
		StressFactors   []string `json:"stressFactors"`
		ImportantEvents []string `json:"importantEvents"`
	}{
		Summary:         req.Summary,
		Mood:            req.Mood,
		Priorities:      nonNil(req.Priorities),
		StressFactors:   nonNil(req.StressFactors),
		ImportantEvents: nonNil(req.ImportantEvents),
	}
	raw, err := json.Marshal(archived)
	if err != nil {
		return nil, err
	}

	now := s.now()
	journal := &models.Journal{
		ID:         uuid.New(),
		UserID:     userID,
		Content:    req.JournalText,
		Mood:       req.Mood,
		Summary:    req.Summary,
		EntryDate:  now,
		AIAnalysis: raw,
		CreatedAt:  now,
	}
	if err := s.journalRepo.Create(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Dashboard summarizes the user's tasks, upcoming deadlines, recent
// journals and documents.
func (s *TaskService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	counts, err := s.taskRepo.Counts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	now := s.now()
	upcoming, err := s.taskRepo.Upcoming(ctx, userID, now, now.Add(upcomingWindow), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming tasks: %w", err)
	}

	resp := &dto.DashboardResponse{
		Total:          counts.Total,
		Completed:      counts.Completed,
		Pending:        counts.Pending,
		HighPriority:   counts.HighPriority,
		Upcoming:       toTaskResponses(upcoming),
		RecentJournals: []dto.JournalResponse{},
	}

	journals, err := s.journalRepo.ListRecent(ctx, userID, recentJournalsLimit)
	if err != nil {
		s.logger.Warn("Failed to load recent journals", zap.Error(err))
	} else {
		resp.RecentJournals = toJournalResponses(journals)
	}

	if total, err := s.docRepo.CountByUserID(ctx, userID); err != nil {
		s.logger.Warn("Failed to count documents", zap.Error(err))
	} else {
		resp.TotalDocuments = total
	}

	return resp, nil
}

func (s *TaskService) getTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) newTask(userID uuid.UUID, title, description string, dueDate *time.Time, priority analysis.Priority, source models.TaskSource) *models.Task {
	now := s.now()
	return &models.Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      models.TaskStatusPending,
		Source:      source,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
