package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// Dataset is the placeholder data served when the store is unconfigured or
// unreachable. Reads succeed against it; every write fails with
// entities.ErrStoreUnavailable so the caller can surface "operation
// unavailable" instead of a generic failure.
type Dataset struct {
	Members []*entities.Member
	Tasks   []*entities.Task
}

// FallbackMemberRepository serves placeholder members in connectivity
// fallback mode.
type FallbackMemberRepository struct {
	data *Dataset
}

// NewFallbackMemberRepository creates a fallback member repository.
func NewFallbackMemberRepository(data *Dataset) ports.MemberRepository {
	return &FallbackMemberRepository{data: data}
}

func (r *FallbackMemberRepository) Create(ctx context.Context, member *entities.Member) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	for _, m := range r.data.Members {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, entities.ErrMemberNotFound
}

func (r *FallbackMemberRepository) Update(ctx context.Context, member *entities.Member) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackMemberRepository) List(ctx context.Context) ([]*entities.Member, error) {
	out := make([]*entities.Member, 0, len(r.data.Members))
	for _, m := range r.data.Members {
		copied := *m
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// FallbackTaskRepository serves placeholder tasks in connectivity fallback
// mode.
type FallbackTaskRepository struct {
	data *Dataset
}

// NewFallbackTaskRepository creates a fallback task repository.
func NewFallbackTaskRepository(data *Dataset) ports.TaskRepository {
	return &FallbackTaskRepository{data: data}
}

func (r *FallbackTaskRepository) Create(ctx context.Context, task *entities.Task) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	for _, t := range r.data.Tasks {
		if t.ID == id {
			return copyTask(t), nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (r *FallbackTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackTaskRepository) List(ctx context.Context) ([]*entities.Task, error) {
	out := make([]*entities.Task, 0, len(r.data.Tasks))
	for _, t := range r.data.Tasks {
		out = append(out, copyTask(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FallbackTaskRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	return entities.ErrStoreUnavailable
}

func copyTask(t *entities.Task) *entities.Task {
	copied := *t
	copied.Subtasks = append([]entities.Subtask(nil), t.Subtasks...)
	copied.Assignments = append([]entities.Assignment(nil), t.Assignments...)
	return &copied
}

// FallbackSubtaskRepository serves placeholder subtasks in connectivity
// fallback mode.
type FallbackSubtaskRepository struct {
	data *Dataset
}

// NewFallbackSubtaskRepository creates a fallback subtask repository.
func NewFallbackSubtaskRepository(data *Dataset) ports.SubtaskRepository {
	return &FallbackSubtaskRepository{data: data}
}

func (r *FallbackSubtaskRepository) Create(ctx context.Context, subtask *entities.Subtask) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackSubtaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subtask, error) {
	for _, t := range r.data.Tasks {
		for _, s := range t.Subtasks {
			if s.ID == id {
				copied := s
				return &copied, nil
			}
		}
	}
	return nil, entities.ErrSubtaskNotFound
}

func (r *FallbackSubtaskRepository) Update(ctx context.Context, subtask *entities.Subtask) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackSubtaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackSubtaskRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Subtask, error) {
	for _, t := range r.data.Tasks {
		if t.ID != taskID {
			continue
		}
		out := make([]*entities.Subtask, 0, len(t.Subtasks))
		for i := range t.Subtasks {
			copied := t.Subtasks[i]
			out = append(out, &copied)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].OrderIndex < out[j].OrderIndex
		})
		return out, nil
	}
	return []*entities.Subtask{}, nil
}

// FallbackAssignmentRepository rejects assignment writes in connectivity
// fallback mode.
type FallbackAssignmentRepository struct {
	data *Dataset
}

// NewFallbackAssignmentRepository creates a fallback assignment repository.
func NewFallbackAssignmentRepository(data *Dataset) ports.AssignmentRepository {
	return &FallbackAssignmentRepository{data: data}
}

func (r *FallbackAssignmentRepository) Set(ctx context.Context, assignment *entities.Assignment) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackAssignmentRepository) Remove(ctx context.Context, taskID, memberID uuid.UUID) error {
	return entities.ErrStoreUnavailable
}

func (r *FallbackAssignmentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]entities.Assignment, error) {
	for _, t := range r.data.Tasks {
		if t.ID == taskID {
			return append([]entities.Assignment(nil), t.Assignments...), nil
		}
	}
	return []entities.Assignment{}, nil
}
