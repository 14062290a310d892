package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *entities.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Member, error)
	Update(ctx context.Context, member *entities.Member) error
	// Delete removes the member; assignments referencing it cascade.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all members sorted by name ascending.
	List(ctx context.Context) ([]*entities.Member, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	// GetByID returns the task with its subtasks and assignments populated.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task; subtasks and assignments cascade.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all tasks, subtasks and assignments populated, sorted
	// by created_at descending.
	List(ctx context.Context) ([]*entities.Task, error)
	// UpdateProgress writes only the progress column.
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error
}

// SubtaskRepository defines the interface for subtask data operations
type SubtaskRepository interface {
	Create(ctx context.Context, subtask *entities.Subtask) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subtask, error)
	Update(ctx context.Context, subtask *entities.Subtask) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByTask returns the task's subtasks sorted by order_index ascending.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Subtask, error)
}

// AssignmentRepository defines the interface for task assignment operations
type AssignmentRepository interface {
	// Set inserts an assignment; a duplicate (task, member) pair fails with
	// entities.ErrDuplicateAssignment.
	Set(ctx context.Context, assignment *entities.Assignment) error
	// Remove deletes an assignment and is a no-op when it does not exist.
	Remove(ctx context.Context, taskID, memberID uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]entities.Assignment, error)
}
