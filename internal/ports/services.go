package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/calendar"
	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
)

// MemberService interface for member management operations
type MemberService interface {
	CreateMember(ctx context.Context, req CreateMemberRequest) (*entities.Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*entities.Member, error)
	UpdateMember(ctx context.Context, id uuid.UUID, req UpdateMemberRequest) (*entities.Member, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, filter MemberListFilter) (listview.Page[*entities.Member], error)
}

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, filter TaskListFilter) (listview.Page[*entities.Task], error)
	GetTaskStats(ctx context.Context) (*TaskStats, error)
	SetAssignment(ctx context.Context, taskID, memberID uuid.UUID, req SetAssignmentRequest) (*entities.Assignment, error)
	RemoveAssignment(ctx context.Context, taskID, memberID uuid.UUID) error
}

// SubtaskService interface for checklist operations; every mutation
// recomputes the owning task's progress.
type SubtaskService interface {
	CreateSubtask(ctx context.Context, taskID uuid.UUID, req CreateSubtaskRequest) (*SubtaskMutation, error)
	UpdateSubtask(ctx context.Context, id uuid.UUID, req UpdateSubtaskRequest) (*SubtaskMutation, error)
	ToggleSubtask(ctx context.Context, id uuid.UUID) (*SubtaskMutation, error)
	DeleteSubtask(ctx context.Context, id uuid.UUID) (int, error)
	RecalculateProgress(ctx context.Context, taskID uuid.UUID) (int, error)
}

// CalendarService interface for the Gantt-style calendar view
type CalendarService interface {
	BuildView(ctx context.Context, ref entities.Date, mode calendar.ViewMode) (*CalendarView, error)
}

// Request/Response Types

// Member related types
type CreateMemberRequest struct {
	Name   string  `json:"name" validate:"required,max=50"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

type UpdateMemberRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=50"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

type MemberListFilter struct {
	Search    string
	SortBy    string
	SortOrder listview.Direction
	Page      int
	PageSize  int
}

// Task related types
type CreateTaskRequest struct {
	Title             string                 `json:"title" validate:"required,max=500"`
	Description       *string                `json:"description" validate:"omitempty,max=2000"`
	Status            entities.Status        `json:"status" validate:"omitempty"`
	Score             int                    `json:"score" validate:"omitempty,min=1,max=10"`
	StartDate         entities.Date          `json:"start_date"`
	EndDate           entities.Date          `json:"end_date"`
	IsRecurring       bool                   `json:"is_recurring"`
	RecurringType     entities.RecurringType `json:"recurring_type" validate:"omitempty"`
	Link              *string                `json:"link" validate:"omitempty,max=2000"`
	CommunicationLink *string                `json:"communication_link" validate:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	Title             *string                 `json:"title" validate:"omitempty,min=1,max=500"`
	Description       *string                 `json:"description" validate:"omitempty,max=2000"`
	Status            *entities.Status        `json:"status" validate:"omitempty"`
	Score             *int                    `json:"score" validate:"omitempty,min=1,max=10"`
	StartDate         *entities.Date          `json:"start_date"`
	EndDate           *entities.Date          `json:"end_date"`
	IsRecurring       *bool                   `json:"is_recurring"`
	RecurringType     *entities.RecurringType `json:"recurring_type" validate:"omitempty"`
	Link              *string                 `json:"link" validate:"omitempty,max=2000"`
	CommunicationLink *string                 `json:"communication_link" validate:"omitempty,max=2000"`
	// Progress is the manual entry path; it bypasses the checklist
	// aggregator.
	Progress *int `json:"progress" validate:"omitempty,min=0,max=100"`
}

type TaskListFilter struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder listview.Direction
	Page      int
	PageSize  int
}

// TaskStats summarizes the task collection for the list page header.
type TaskStats struct {
	Total      int                     `json:"total"`
	ByStatus   map[entities.Status]int `json:"by_status"`
	TotalScore int                     `json:"total_score"`
}

// Subtask related types
type CreateSubtaskRequest struct {
	Text       string `json:"text" validate:"required,max=500"`
	OrderIndex *int   `json:"order_index"`
}

type UpdateSubtaskRequest struct {
	Text       *string `json:"text" validate:"omitempty,min=1,max=500"`
	Completed  *bool   `json:"completed"`
	OrderIndex *int    `json:"order_index"`
}

// SubtaskMutation is returned by every subtask write so callers can reflect
// the recomputed progress without refetching the task.
type SubtaskMutation struct {
	Subtask  *entities.Subtask `json:"subtask"`
	Progress int               `json:"progress"`
}

// Assignment related types
type SetAssignmentRequest struct {
	Role          entities.AssigneeRole `json:"role" validate:"required,oneof=main follower"`
	WorkloadRatio *float64              `json:"workload_ratio" validate:"omitempty,gt=0,lte=1"`
}

// Calendar view types
type CalendarView struct {
	View       calendar.ViewMode `json:"view"`
	RangeStart entities.Date     `json:"range_start"`
	RangeEnd   entities.Date     `json:"range_end"`
	Dates      []entities.Date   `json:"dates"`
	Rows       []CalendarRow     `json:"rows"`
}

// CalendarRow is one member lane; members with no visible tasks still get
// a row.
type CalendarRow struct {
	Member *entities.Member `json:"member"`
	Bars   []CalendarBar    `json:"bars"`
}

type CalendarBar struct {
	TaskID       uuid.UUID               `json:"task_id"`
	Title        string                  `json:"title"`
	Status       entities.Status         `json:"status"`
	Progress     int                     `json:"progress"`
	Bucket       calendar.ProgressBucket `json:"bucket"`
	LeftPercent  float64                 `json:"left_percent"`
	WidthPercent float64                 `json:"width_percent"`
}

// Common response types
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
