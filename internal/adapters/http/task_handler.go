package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siesta-zumi/teamtask/internal/application/services"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// TaskHandler handles task and assignment requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles the task list page: status filter, search, sort,
// paginate.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	page, pageSize, err := parsePaging(c)
	if err != nil {
		return err
	}
	order, err := parseSortOrder(c)
	if err != nil {
		return err
	}

	filter := ports.TaskListFilter{
		Status:    c.QueryParam("status"),
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: order,
		Page:      page,
		PageSize:  pageSize,
	}

	result, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetTaskStats serves the list page's status count cards.
func (h *TaskHandler) GetTaskStats(c echo.Context) error {
	stats, err := h.taskService.GetTaskStats(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Task stats failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create task failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles getting a task with subtasks and assignments
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles partial task edits, including manual progress entry
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update task failed", "error", err, "task_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetAssignment adds a member to a task
func (h *TaskHandler) SetAssignment(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return err
	}

	var req ports.SetAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.taskService.SetAssignment(c.Request().Context(), taskID, memberID, req)
	if err != nil {
		h.logger.Errorw("Set assignment failed", "error", err, "task_id", taskID, "member_id", memberID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, assignment)
}

// RemoveAssignment detaches a member from a task
func (h *TaskHandler) RemoveAssignment(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return err
	}

	if err := h.taskService.RemoveAssignment(c.Request().Context(), taskID, memberID); err != nil {
		h.logger.Errorw("Remove assignment failed", "error", err, "task_id", taskID, "member_id", memberID)
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
