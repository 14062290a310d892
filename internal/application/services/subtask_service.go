package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// SubtaskService handles checklist operations and keeps the owning task's
// progress consistent with checklist completion.
type SubtaskService struct {
	subtaskRepo ports.SubtaskRepository
	taskRepo    ports.TaskRepository
	logger      *logger.Logger
}

// NewSubtaskService creates a new subtask service
func NewSubtaskService(subtaskRepo ports.SubtaskRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *SubtaskService {
	return &SubtaskService{
		subtaskRepo: subtaskRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// CreateSubtask adds a checklist item and recomputes the task's progress.
func (s *SubtaskService) CreateSubtask(ctx context.Context, taskID uuid.UUID, req ports.CreateSubtaskRequest) (*ports.SubtaskMutation, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	subtask := &entities.Subtask{
		TaskID: taskID,
		Text:   req.Text,
	}
	if req.OrderIndex != nil {
		subtask.OrderIndex = *req.OrderIndex
	}

	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	progress, err := s.RecalculateProgress(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Subtask created", "subtask_id", subtask.ID, "task_id", taskID)

	return &ports.SubtaskMutation{Subtask: subtask, Progress: progress}, nil
}

// UpdateSubtask edits a checklist item. A completion change recomputes the
// task's progress; a pure text or reorder edit does not.
func (s *SubtaskService) UpdateSubtask(ctx context.Context, id uuid.UUID, req ports.UpdateSubtaskRequest) (*ports.SubtaskMutation, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	completionChanged := req.Completed != nil && *req.Completed != subtask.Completed

	if req.Text != nil {
		subtask.Text = *req.Text
	}
	if req.Completed != nil {
		subtask.Completed = *req.Completed
	}
	if req.OrderIndex != nil {
		subtask.OrderIndex = *req.OrderIndex
	}

	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	progress := -1
	if completionChanged {
		if progress, err = s.RecalculateProgress(ctx, subtask.TaskID); err != nil {
			return nil, err
		}
	} else {
		task, err := s.taskRepo.GetByID(ctx, subtask.TaskID)
		if err != nil {
			return nil, err
		}
		progress = task.Progress
	}

	return &ports.SubtaskMutation{Subtask: subtask, Progress: progress}, nil
}

// ToggleSubtask flips a checklist item's completion and recomputes the
// task's progress.
func (s *SubtaskService) ToggleSubtask(ctx context.Context, id uuid.UUID) (*ports.SubtaskMutation, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subtask.Completed = !subtask.Completed
	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, fmt.Errorf("failed to toggle subtask: %w", err)
	}

	progress, err := s.RecalculateProgress(ctx, subtask.TaskID)
	if err != nil {
		return nil, err
	}

	return &ports.SubtaskMutation{Subtask: subtask, Progress: progress}, nil
}

// DeleteSubtask removes a checklist item, recomputes the task's progress
// and returns the new percentage.
func (s *SubtaskService) DeleteSubtask(ctx context.Context, id uuid.UUID) (int, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.subtaskRepo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete subtask: %w", err)
	}

	progress, err := s.RecalculateProgress(ctx, subtask.TaskID)
	if err != nil {
		return 0, err
	}

	s.logger.Infow("Subtask deleted", "subtask_id", id, "task_id", subtask.TaskID)

	return progress, nil
}

// RecalculateProgress derives the task's completion percentage from its
// checklist. With no subtasks it returns 0 and leaves the stored value
// untouched, so a manually entered progress survives an emptied checklist.
func (s *SubtaskService) RecalculateProgress(ctx context.Context, taskID uuid.UUID) (int, error) {
	subtasks, err := s.subtaskRepo.ListByTask(ctx, taskID)
	if err != nil {
		return 0, fmt.Errorf("failed to list subtasks: %w", err)
	}

	if len(subtasks) == 0 {
		return 0, nil
	}

	completed := 0
	for _, st := range subtasks {
		if st.Completed {
			completed++
		}
	}
	progress := int(math.Round(100 * float64(completed) / float64(len(subtasks))))

	if err := s.taskRepo.UpdateProgress(ctx, taskID, progress); err != nil {
		return 0, fmt.Errorf("failed to store progress: %w", err)
	}

	return progress, nil
}
