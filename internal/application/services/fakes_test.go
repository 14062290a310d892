package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
)

// In-memory repositories for service tests.

type memoryMemberRepo struct {
	members map[uuid.UUID]*entities.Member
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{members: make(map[uuid.UUID]*entities.Member)}
}

func (r *memoryMemberRepo) Create(_ context.Context, member *entities.Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, entities.ErrMemberNotFound
	}
	return m, nil
}

func (r *memoryMemberRepo) Update(_ context.Context, member *entities.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return entities.ErrMemberNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *memoryMemberRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.members[id]; !ok {
		return entities.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *memoryMemberRepo) List(_ context.Context) ([]*entities.Member, error) {
	out := make([]*entities.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memoryTaskRepo struct {
	tasks       map[uuid.UUID]*entities.Task
	subtasks    *memorySubtaskRepo
	progressLog []int
}

func newMemoryTaskRepo(subtasks *memorySubtaskRepo) *memoryTaskRepo {
	return &memoryTaskRepo{tasks: make(map[uuid.UUID]*entities.Task), subtasks: subtasks}
}

func (r *memoryTaskRepo) Create(_ context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memoryTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	if r.subtasks != nil {
		children, _ := r.subtasks.ListByTask(ctx, id)
		t.Subtasks = make([]entities.Subtask, 0, len(children))
		for _, st := range children {
			t.Subtasks = append(t.Subtasks, *st)
		}
	}
	return t, nil
}

func (r *memoryTaskRepo) Update(_ context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *memoryTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memoryTaskRepo) List(_ context.Context) ([]*entities.Task, error) {
	out := make([]*entities.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryTaskRepo) UpdateProgress(_ context.Context, id uuid.UUID, progress int) error {
	t, ok := r.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.Progress = progress
	r.progressLog = append(r.progressLog, progress)
	return nil
}

type memorySubtaskRepo struct {
	subtasks map[uuid.UUID]*entities.Subtask
}

func newMemorySubtaskRepo() *memorySubtaskRepo {
	return &memorySubtaskRepo{subtasks: make(map[uuid.UUID]*entities.Subtask)}
}

func (r *memorySubtaskRepo) Create(_ context.Context, subtask *entities.Subtask) error {
	if subtask.ID == uuid.Nil {
		subtask.ID = uuid.New()
	}
	r.subtasks[subtask.ID] = subtask
	return nil
}

func (r *memorySubtaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Subtask, error) {
	st, ok := r.subtasks[id]
	if !ok {
		return nil, entities.ErrSubtaskNotFound
	}
	return st, nil
}

func (r *memorySubtaskRepo) Update(_ context.Context, subtask *entities.Subtask) error {
	if _, ok := r.subtasks[subtask.ID]; !ok {
		return entities.ErrSubtaskNotFound
	}
	r.subtasks[subtask.ID] = subtask
	return nil
}

func (r *memorySubtaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.subtasks[id]; !ok {
		return entities.ErrSubtaskNotFound
	}
	delete(r.subtasks, id)
	return nil
}

func (r *memorySubtaskRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]*entities.Subtask, error) {
	out := []*entities.Subtask{}
	for _, st := range r.subtasks {
		if st.TaskID == taskID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

type memoryAssignmentRepo struct {
	assignments map[uuid.UUID]map[uuid.UUID]*entities.Assignment
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uuid.UUID]map[uuid.UUID]*entities.Assignment)}
}

func (r *memoryAssignmentRepo) Set(_ context.Context, assignment *entities.Assignment) error {
	byMember, ok := r.assignments[assignment.TaskID]
	if !ok {
		byMember = make(map[uuid.UUID]*entities.Assignment)
		r.assignments[assignment.TaskID] = byMember
	}
	if _, exists := byMember[assignment.MemberID]; exists {
		return entities.ErrDuplicateAssignment
	}
	byMember[assignment.MemberID] = assignment
	return nil
}

func (r *memoryAssignmentRepo) Remove(_ context.Context, taskID, memberID uuid.UUID) error {
	if byMember, ok := r.assignments[taskID]; ok {
		delete(byMember, memberID)
	}
	return nil
}

func (r *memoryAssignmentRepo) ListByTask(_ context.Context, taskID uuid.UUID) ([]entities.Assignment, error) {
	out := []entities.Assignment{}
	for _, a := range r.assignments[taskID] {
		out = append(out, *a)
	}
	return out, nil
}
