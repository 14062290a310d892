package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/siesta-zumi/teamtask/internal/application/services"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// SubtaskHandler handles checklist requests. Every mutation response
// carries the task's recomputed progress.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
	logger         *logger.Logger
}

// NewSubtaskHandler creates a new subtask handler
func NewSubtaskHandler(subtaskService *services.SubtaskService, logger *logger.Logger) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
		logger:         logger,
	}
}

// CreateSubtask adds a checklist item to a task
func (h *SubtaskHandler) CreateSubtask(c echo.Context) error {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.CreateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	mutation, err := h.subtaskService.CreateSubtask(c.Request().Context(), taskID, req)
	if err != nil {
		h.logger.Errorw("Create subtask failed", "error", err, "task_id", taskID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, mutation)
}

// UpdateSubtask edits a checklist item
func (h *SubtaskHandler) UpdateSubtask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateSubtaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	mutation, err := h.subtaskService.UpdateSubtask(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update subtask failed", "error", err, "subtask_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, mutation)
}

// ToggleSubtask flips a checklist item's completion state
func (h *SubtaskHandler) ToggleSubtask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	mutation, err := h.subtaskService.ToggleSubtask(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Toggle subtask failed", "error", err, "subtask_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, mutation)
}

// DeleteSubtask removes a checklist item
func (h *SubtaskHandler) DeleteSubtask(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	progress, err := h.subtaskService.DeleteSubtask(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Delete subtask failed", "error", err, "subtask_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]int{"progress": progress})
}
