package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// TaskService handles task and assignment operations
type TaskService struct {
	taskRepo       ports.TaskRepository
	memberRepo     ports.MemberRepository
	assignmentRepo ports.AssignmentRepository
	logger         *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, memberRepo ports.MemberRepository, assignmentRepo ports.AssignmentRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		memberRepo:     memberRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	task := &entities.Task{
		Title:             req.Title,
		Description:       req.Description,
		Status:            req.Status,
		Score:             req.Score,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsRecurring:       req.IsRecurring,
		RecurringType:     req.RecurringType,
		Link:              req.Link,
		CommunicationLink: req.CommunicationLink,
	}

	// Defaults mirror the store column defaults
	if task.Status == "" {
		task.Status = entities.StatusNotStarted
	}
	if task.Score == 0 {
		task.Score = 1
	}
	if task.RecurringType == "" {
		task.RecurringType = entities.RecurringNone
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task.Subtasks = []entities.Subtask{}
	task.Assignments = []entities.Assignment{}

	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// GetTask retrieves a task with its subtasks and assignments
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies a partial update. A progress value here is the manual
// entry path and is written as-is, without consulting the checklist.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Score != nil {
		task.Score = *req.Score
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = *req.EndDate
	}
	if req.IsRecurring != nil {
		task.IsRecurring = *req.IsRecurring
	}
	if req.RecurringType != nil {
		task.RecurringType = *req.RecurringType
	}
	if req.Link != nil {
		task.Link = req.Link
	}
	if req.CommunicationLink != nil {
		task.CommunicationLink = req.CommunicationLink
	}
	if req.Progress != nil {
		task.Progress = *req.Progress
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// DeleteTask removes a task with its subtasks and assignments
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

// ListTasks runs the filter -> sort -> paginate pipeline over the full
// task collection.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskListFilter) (listview.Page[*entities.Task], error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return listview.Page[*entities.Task]{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	filtered := listview.FilterTasks(tasks, filter.Status, filter.Search)
	sorted := listview.SortTasks(filtered, filter.SortBy, filter.SortOrder)
	return listview.Paginate(sorted, filter.Page, filter.PageSize), nil
}

// GetTaskStats summarizes the collection for the list page header cards.
func (s *TaskService) GetTaskStats(ctx context.Context) (*ports.TaskStats, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	stats := &ports.TaskStats{
		Total:    len(tasks),
		ByStatus: make(map[entities.Status]int),
	}
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		stats.TotalScore += t.Score
	}

	return stats, nil
}

// SetAssignment adds a member to a task. The workload ratio defaults per
// role (1.0 main, 0.3 follower) when the request leaves it unset.
func (s *TaskService) SetAssignment(ctx context.Context, taskID, memberID uuid.UUID, req ports.SetAssignmentRequest) (*entities.Assignment, error) {
	if !req.Role.IsValid() {
		return nil, entities.ErrInvalidRole
	}

	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	assignment := &entities.Assignment{
		TaskID:        taskID,
		MemberID:      memberID,
		Role:          req.Role,
		WorkloadRatio: entities.DefaultWorkloadRatio(req.Role),
	}
	if req.WorkloadRatio != nil {
		assignment.WorkloadRatio = *req.WorkloadRatio
	}

	if err := s.assignmentRepo.Set(ctx, assignment); err != nil {
		return nil, err
	}
	assignment.Member = member

	s.logger.Infow("Assignment set", "task_id", taskID, "member_id", memberID, "role", req.Role)

	return assignment, nil
}

// RemoveAssignment detaches a member from a task; removing an absent
// assignment is a no-op.
func (s *TaskService) RemoveAssignment(ctx context.Context, taskID, memberID uuid.UUID) error {
	if err := s.assignmentRepo.Remove(ctx, taskID, memberID); err != nil {
		return err
	}

	s.logger.Infow("Assignment removed", "task_id", taskID, "member_id", memberID)

	return nil
}

func validateTask(task *entities.Task) error {
	if !task.Status.IsValid() {
		return entities.ErrInvalidStatus
	}
	if !task.RecurringType.IsValid() {
		return entities.ErrInvalidRecurrence
	}
	if err := task.ValidateDates(); err != nil {
		return err
	}
	return task.ValidateRecurrence()
}
