package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mindgrid/internal/analysis"
	"mindgrid/internal/dto"
	"mindgrid/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var taskNow = time.Date(2025, 2, 25, 12, 0, 0, 0, time.UTC)

type taskFixture struct {
	svc      *TaskService
	tasks    *fakeTaskRepo
	journals *fakeJournalRepo
	docs     *fakeDocumentRepo
}

func newTaskFixture(completer analysis.Completer) *taskFixture {
	f := &taskFixture{
		tasks:    newFakeTaskRepo(),
		journals: newFakeJournalRepo(),
		docs:     newFakeDocumentRepo(),
	}
	f.svc = NewTaskService(f.tasks, f.journals, f.docs, analysis.NewAnalyzer(completer, zap.NewNop()), zap.NewNop())
	f.svc.now = fixedClock(taskNow)
	return f
}

func strPtr(s string) *string { return &s }

func TestCreateTaskDefaults(t *testing.T) {
	f := newTaskFixture(nil)
	userID := uuid.New()

	task, err := f.svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "  Pay rent  "})
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, "MEDIUM", task.Priority)
	assert.Equal(t, "PENDING", task.Status)
	assert.Equal(t, "user", task.Source)

	task, err = f.svc.CreateTask(context.Background(), userID, &dto.CreateTaskRequest{Title: "Call bank", Priority: "high", Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "HIGH", task.Priority)
	assert.Equal(t, "COMPLETED", task.Status)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newTaskFixture(nil)

	_, err := f.svc.CreateTask(context.Background(), uuid.New(), &dto.CreateTaskRequest{Title: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CreateTask(context.Background(), uuid.New(), &dto.CreateTaskRequest{Title: "x", Status: "DONE"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListTasksUpperCasesFilters(t *testing.T) {
	f := newTaskFixture(nil)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.svc.CreateTask(ctx, userID, &dto.CreateTaskRequest{Title: "a", Priority: "HIGH"})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, userID, &dto.CreateTaskRequest{Title: "b", Priority: "LOW"})
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, uuid.New(), &dto.CreateTaskRequest{Title: "c", Priority: "HIGH"})
	require.NoError(t, err)

	tasks, err := f.svc.ListTasks(ctx, userID, "pending", "high")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)

	all, err := f.svc.ListTasks(ctx, userID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateTaskPartial(t *testing.T) {
	f := newTaskFixture(nil)
	ctx := context.Background()
	userID := uuid.New()

	created, err := f.svc.CreateTask(ctx, userID, &dto.CreateTaskRequest{Title: "Draft", Description: "keep me"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := f.svc.UpdateTask(ctx, userID, id, &dto.UpdateTaskRequest{Status: strPtr("completed"), Priority: strPtr("low")})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Equal(t, "LOW", updated.Priority)

	_, err = f.svc.UpdateTask(ctx, userID, id, &dto.UpdateTaskRequest{Priority: strPtr("urgent")})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.UpdateTask(ctx, userID, id, &dto.UpdateTaskRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.UpdateTask(ctx, uuid.New(), id, &dto.UpdateTaskRequest{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestGetAndDeleteTask(t *testing.T) {
	f := newTaskFixture(nil)
	ctx := context.Background()
	userID := uuid.New()

	created, err := f.svc.CreateTask(ctx, userID, &dto.CreateTaskRequest{Title: "x"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = f.svc.GetTask(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	got, err := f.svc.GetTask(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)

	require.NoError(t, f.svc.DeleteTask(ctx, userID, id))
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, userID, id), ErrTaskNotFound)
}

func TestGenerateFromText(t *testing.T) {
	f := newTaskFixture(nil)

	resp, err := f.svc.GenerateFromText(context.Background(), uuid.New(), billText)
	require.NoError(t, err)

	assert.Equal(t, "Scanned Financial Document from Electricity Bill", resp.Task.Title)
	assert.Equal(t, "Auto-generated task based on document analysis. Provider: Electricity Bill. ID: AB12345", resp.Task.Description)
	assert.Equal(t, "HIGH", resp.Task.Priority)
	assert.Equal(t, "ai", resp.Task.Source)
	require.NotNil(t, resp.Task.DueDate)
	assert.Equal(t, "2025-03-01", resp.Task.DueDate.Format("2006-01-02"))
	assert.Equal(t, "Financial", resp.Analysis.Category)
	assert.Len(t, f.tasks.tasks, 1)

	_, err = f.svc.GenerateFromText(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPreviewJournalTasksFallback(t *testing.T) {
	f := newTaskFixture(nil)

	preview, err := f.svc.PreviewJournalTasks(context.Background(), "Busy day. I need to call the dentist. Lunch was nice!")
	require.NoError(t, err)
	require.Len(t, preview.Tasks, 1)
	assert.Equal(t, "I need to call the dentist", preview.Tasks[0].Task)
	assert.Equal(t, "MEDIUM", preview.Tasks[0].Priority)
	assert.Empty(t, f.tasks.tasks, "preview stores nothing")
	assert.NotNil(t, preview.FollowUpQuestions)

	_, err = f.svc.PreviewJournalTasks(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClarifyJournalTasksSendsAnswers(t *testing.T) {
	var prompt string
	completer := analysis.CompleterFunc(func(ctx context.Context, p string) (string, error) {
		prompt = p
		return `{"tasks":[{"task":"Book dentist for Friday","reason":"Tooth ache","priority":"high","dueDate":"2025-02-28"}],"followUpQuestions":[],"summary":"Health first"}`, nil
	})
	f := newTaskFixture(completer)

	preview, err := f.svc.ClarifyJournalTasks(context.Background(), &dto.ClarifyTasksRequest{
		JournalText: "I need to see a dentist",
		Answers:     []dto.ClarificationAnswer{{Question: "When?", Answer: "Friday"}},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Q: When?\nA: Friday")
	require.Len(t, preview.Tasks, 1)
	assert.Equal(t, "HIGH", preview.Tasks[0].Priority)
	assert.Equal(t, "Health first", preview.Summary)

	_, err = f.svc.ClarifyJournalTasks(context.Background(), &dto.ClarifyTasksRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmJournalTasks(t *testing.T) {
	f := newTaskFixture(nil)
	userID := uuid.New()

	resp, err := f.svc.ConfirmJournalTasks(context.Background(), userID, &dto.ConfirmTasksRequest{
		Tasks: []dto.ConfirmTask{
			{Title: "Call mom", Priority: "low"},
			{Title: "   "},
			{Title: "File taxes"},
		},
		JournalText:   "Today I realised I must file taxes",
		Summary:       "Taxes are due",
		Mood:          strPtr("anxious"),
		StressFactors: []string{"taxes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "2 tasks created from journal", resp.Message)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "LOW", resp.Tasks[0].Priority)
	assert.Equal(t, "MEDIUM", resp.Tasks[1].Priority)
	for _, task := range resp.Tasks {
		assert.Equal(t, "ai", task.Source)
		assert.Equal(t, "PENDING", task.Status)
	}
	assert.Equal(t, 1, f.tasks.batches, "confirmed tasks are stored in one batch")

	require.NotNil(t, resp.Journal)
	require.Len(t, f.journals.journals, 1)
	var archived map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Journal.AIAnalysis, &archived))
	assert.Equal(t, "Taxes are due", archived["summary"])
	assert.Equal(t, []interface{}{"taxes"}, archived["stressFactors"])
	assert.Equal(t, []interface{}{}, archived["priorities"])
}

func TestConfirmJournalTasksJournalFailureIsNotFatal(t *testing.T) {
	f := newTaskFixture(nil)
	f.journals.createErr = errors.New("insert failed")

	resp, err := f.svc.ConfirmJournalTasks(context.Background(), uuid.New(), &dto.ConfirmTasksRequest{
		Tasks:       []dto.ConfirmTask{{Title: "x"}},
		JournalText: "text",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Journal)
	assert.Len(t, resp.Tasks, 1)
}

func TestConfirmJournalTasksRequiresTasks(t *testing.T) {
	f := newTaskFixture(nil)
	_, err := f.svc.ConfirmJournalTasks(context.Background(), uuid.New(), &dto.ConfirmTasksRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDashboard(t *testing.T) {
	f := newTaskFixture(nil)
	ctx := context.Background()
	userID := uuid.New()

	at := func(d time.Duration) *time.Time {
		v := taskNow.Add(d)
		return &v
	}
	seed := []*models.Task{
		{Title: "soon", DueDate: at(24 * time.Hour), Priority: analysis.PriorityHigh, Status: models.TaskStatusPending},
		{Title: "sooner", DueDate: at(time.Hour), Priority: analysis.PriorityLow, Status: models.TaskStatusCompleted},
		{Title: "later", DueDate: at(10 * 24 * time.Hour), Priority: analysis.PriorityHigh, Status: models.TaskStatusPending},
		{Title: "overdue", DueDate: at(-time.Hour), Priority: analysis.PriorityMedium, Status: models.TaskStatusPending},
		{Title: "undated", Priority: analysis.PriorityMedium, Status: models.TaskStatusPending},
	}
	for _, task := range seed {
		task.ID = uuid.New()
		task.UserID = userID
		require.NoError(t, f.tasks.Create(ctx, task))
	}
	for i := 0; i < 7; i++ {
		require.NoError(t, f.journals.Create(ctx, &models.Journal{
			ID:        uuid.New(),
			UserID:    userID,
			Content:   strings.Repeat("j", i+1),
			CreatedAt: taskNow.Add(time.Duration(i) * time.Minute),
		}))
	}
	f.docs.docs[uuid.New()] = &models.Document{UserID: userID}

	dash, err := f.svc.Dashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 5, dash.Total)
	assert.Equal(t, 1, dash.Completed)
	assert.Equal(t, 4, dash.Pending)
	assert.Equal(t, 2, dash.HighPriority)
	require.Len(t, dash.Upcoming, 2)
	assert.Equal(t, "sooner", dash.Upcoming[0].Title)
	assert.Equal(t, "soon", dash.Upcoming[1].Title)
	require.Len(t, dash.RecentJournals, 5)
	assert.Equal(t, "jjjjjjj", dash.RecentJournals[0].Content)
	assert.Equal(t, 1, dash.TotalDocuments)
}

func TestDashboardToleratesJournalFailure(t *testing.T) {
	f := newTaskFixture(nil)
	f.journals.listErr = errors.New("timeout")

	dash, err := f.svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, dash.RecentJournals)
	assert.Empty(t, dash.RecentJournals)
	assert.NotNil(t, dash.Upcoming)
}
