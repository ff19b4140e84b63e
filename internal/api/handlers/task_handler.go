package handlers

import (
	"mindgrid/internal/dto"
	"mindgrid/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Security Bearer
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.taskService.CreateTask(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to create task")
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks godoc
// @Summary List tasks
// @Description Tasks ordered by due date, optionally filtered
// @Tags tasks
// @Produce json
// @Param status query string false "PENDING or COMPLETED"
// @Param priority query string false "HIGH, MEDIUM or LOW"
// @Security Bearer
// @Success 200 {array} dto.TaskResponse
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	tasks, err := h.taskService.ListTasks(c.Context(), userID, c.Query("status"), c.Query("priority"))
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to list tasks")
	}

	return c.JSON(tasks)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Security Bearer
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	taskID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Task not found")
	}

	task, err := h.taskService.GetTask(c.Context(), userID, taskID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load task")
	}

	return c.JSON(task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Only the fields present in the body are changed
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	taskID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Task not found")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(c.Context(), userID, taskID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to update task")
	}

	return c.JSON(task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	taskID, err := pathID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Task not found")
	}

	if err := h.taskService.DeleteTask(c.Context(), userID, taskID); err != nil {
		return serviceError(c, h.logger, err, "Failed to delete task")
	}

	return c.JSON(dto.MessageResponse{Message: "Task deleted"})
}

// GenerateTask godoc
// @Summary Generate a task from text
// @Description Analyzes document text and stores one AI task for it
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeTextRequest true "Document text"
// @Security Bearer
// @Success 201 {object} dto.GenerateTaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/generate [post]
func (h *TaskHandler) GenerateTask(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.taskService.GenerateFromText(c.Context(), userID, req.Text)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to generate task")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PreviewJournalTasks godoc
// @Summary Suggest tasks for a journal entry
// @Description Returns suggestions and follow-up questions; nothing is stored
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.JournalTasksRequest true "Journal text"
// @Security Bearer
// @Success 200 {object} dto.TaskPreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/ai-journal [post]
func (h *TaskHandler) PreviewJournalTasks(c *fiber.Ctx) error {
	var req dto.JournalTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.taskService.PreviewJournalTasks(c.Context(), req.JournalText)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to suggest tasks")
	}

	return c.JSON(resp)
}

// ClarifyJournalTasks godoc
// @Summary Refine suggestions with answers
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.ClarifyTasksRequest true "Journal text and answers"
// @Security Bearer
// @Success 200 {object} dto.TaskPreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/ai-journal/clarify [post]
func (h *TaskHandler) ClarifyJournalTasks(c *fiber.Ctx) error {
	var req dto.ClarifyTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.taskService.ClarifyJournalTasks(c.Context(), &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to refine tasks")
	}

	return c.JSON(resp)
}

// ConfirmJournalTasks godoc
// @Summary Store reviewed suggestions
// @Description Creates the confirmed tasks and archives the journal entry when its text is sent
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.ConfirmTasksRequest true "Confirmed tasks"
// @Security Bearer
// @Success 201 {object} dto.ConfirmTasksResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/tasks/ai-journal/confirm [post]
func (h *TaskHandler) ConfirmJournalTasks(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ConfirmTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.taskService.ConfirmJournalTasks(c.Context(), userID, &req)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to save tasks")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Dashboard godoc
// @Summary Task dashboard
// @Description Task counts, tasks due this week, recent journal entries and the document count
// @Tags tasks
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Router /api/tasks/dashboard/summary [get]
func (h *TaskHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	resp, err := h.taskService.Dashboard(c.Context(), userID)
	if err != nil {
		return serviceError(c, h.logger, err, "Failed to load dashboard")
	}

	return c.JSON(resp)
}
