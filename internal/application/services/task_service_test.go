package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

type taskFixture struct {
	svc         *TaskService
	taskRepo    *memoryTaskRepo
	memberRepo  *memoryMemberRepo
	assignments *memoryAssignmentRepo
}

func newTaskFixture() taskFixture {
	taskRepo := newMemoryTaskRepo(nil)
	memberRepo := newMemoryMemberRepo()
	assignments := newMemoryAssignmentRepo()

	return taskFixture{
		svc:         NewTaskService(taskRepo, memberRepo, assignments, logger.NewNop()),
		taskRepo:    taskRepo,
		memberRepo:  memberRepo,
		assignments: assignments,
	}
}

func validCreateRequest() ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Title:     "Prepare sprint demo",
		StartDate: entities.NewDate(2026, time.June, 1),
		EndDate:   entities.NewDate(2026, time.June, 5),
	}
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	f := newTaskFixture()

	task, err := f.svc.CreateTask(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, entities.StatusNotStarted, task.Status)
	assert.Equal(t, 1, task.Score)
	assert.Equal(t, entities.RecurringNone, task.RecurringType)
	assert.Equal(t, 0, task.Progress)
	assert.NotNil(t, task.Subtasks)
	assert.NotNil(t, task.Assignments)
}

func TestCreateTaskValidation(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	t.Run("end before start", func(t *testing.T) {
		req := validCreateRequest()
		req.EndDate = entities.NewDate(2026, time.May, 30)
		_, err := f.svc.CreateTask(ctx, req)
		assert.ErrorIs(t, err, entities.ErrInvalidDateRange)
	})

	t.Run("recurring without a type", func(t *testing.T) {
		req := validCreateRequest()
		req.IsRecurring = true
		_, err := f.svc.CreateTask(ctx, req)
		assert.ErrorIs(t, err, entities.ErrInvalidRecurrence)
	})

	t.Run("type without the flag", func(t *testing.T) {
		req := validCreateRequest()
		req.RecurringType = entities.RecurringMonthly
		_, err := f.svc.CreateTask(ctx, req)
		assert.ErrorIs(t, err, entities.ErrInvalidRecurrence)
	})

	t.Run("unknown status", func(t *testing.T) {
		req := validCreateRequest()
		req.Status = entities.Status("archived")
		_, err := f.svc.CreateTask(ctx, req)
		assert.ErrorIs(t, err, entities.ErrInvalidStatus)
	})
}

func TestUpdateTaskPartialApply(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	status := entities.StatusInProgress
	score := 7
	updated, err := f.svc.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{
		Status: &status,
		Score:  &score,
	})
	require.NoError(t, err)

	assert.Equal(t, entities.StatusInProgress, updated.Status)
	assert.Equal(t, 7, updated.Score)
	assert.Equal(t, "Prepare sprint demo", updated.Title)
}

func TestUpdateTaskManualProgress(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	// Manual progress writes the value directly, no checklist involved.
	progress := 65
	updated, err := f.svc.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 65, updated.Progress)
}

func TestUpdateTaskUnknownID(t *testing.T) {
	f := newTaskFixture()

	title := "nope"
	_, err := f.svc.UpdateTask(context.Background(), uuid.New(), ports.UpdateTaskRequest{Title: &title})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestListTasksPipeline(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	for _, spec := range []struct {
		title  string
		status entities.Status
		score  int
	}{
		{"Alpha rollout", entities.StatusInProgress, 5},
		{"Beta checklist", entities.StatusNotStarted, 3},
		{"Alpha retro", entities.StatusCompleted, 8},
	} {
		req := validCreateRequest()
		req.Title = spec.title
		req.Status = spec.status
		req.Score = spec.score
		_, err := f.svc.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	page, err := f.svc.ListTasks(ctx, ports.TaskListFilter{
		Search:    "alpha",
		SortBy:    listview.TaskColumnScore,
		SortOrder: listview.Descending,
		Page:      1,
		PageSize:  10,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha retro", page.Items[0].Title)
	assert.Equal(t, "Alpha rollout", page.Items[1].Title)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestGetTaskStats(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	for _, spec := range []struct {
		status entities.Status
		score  int
	}{
		{entities.StatusInProgress, 5},
		{entities.StatusInProgress, 2},
		{entities.StatusApproved, 4},
	} {
		req := validCreateRequest()
		req.Status = spec.status
		req.Score = spec.score
		_, err := f.svc.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	stats, err := f.svc.GetTaskStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 11, stats.TotalScore)
	assert.Equal(t, 2, stats.ByStatus[entities.StatusInProgress])
	assert.Equal(t, 1, stats.ByStatus[entities.StatusApproved])
}

func TestSetAssignment(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	member := &entities.Member{Name: "Alice"}
	require.NoError(t, f.memberRepo.Create(ctx, member))

	t.Run("main role defaults to full workload", func(t *testing.T) {
		a, err := f.svc.SetAssignment(ctx, task.ID, member.ID, ports.SetAssignmentRequest{Role: entities.RoleMain})
		require.NoError(t, err)
		assert.Equal(t, 1.0, a.WorkloadRatio)
		require.NotNil(t, a.Member)
		assert.Equal(t, "Alice", a.Member.Name)
	})

	t.Run("duplicate pair is rejected", func(t *testing.T) {
		_, err := f.svc.SetAssignment(ctx, task.ID, member.ID, ports.SetAssignmentRequest{Role: entities.RoleFollower})
		assert.ErrorIs(t, err, entities.ErrDuplicateAssignment)
	})

	t.Run("follower default and explicit override", func(t *testing.T) {
		second := &entities.Member{Name: "Ben"}
		require.NoError(t, f.memberRepo.Create(ctx, second))

		a, err := f.svc.SetAssignment(ctx, task.ID, second.ID, ports.SetAssignmentRequest{Role: entities.RoleFollower})
		require.NoError(t, err)
		assert.Equal(t, 0.3, a.WorkloadRatio)

		third := &entities.Member{Name: "Chika"}
		require.NoError(t, f.memberRepo.Create(ctx, third))

		ratio := 0.5
		a, err = f.svc.SetAssignment(ctx, task.ID, third.ID, ports.SetAssignmentRequest{Role: entities.RoleFollower, WorkloadRatio: &ratio})
		require.NoError(t, err)
		assert.Equal(t, 0.5, a.WorkloadRatio)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := f.svc.SetAssignment(ctx, task.ID, uuid.New(), ports.SetAssignmentRequest{Role: entities.RoleMain})
		assert.ErrorIs(t, err, entities.ErrMemberNotFound)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.svc.SetAssignment(ctx, task.ID, member.ID, ports.SetAssignmentRequest{Role: "owner"})
		assert.ErrorIs(t, err, entities.ErrInvalidRole)
	})
}

func TestRemoveAssignmentIdempotent(t *testing.T) {
	f := newTaskFixture()
	ctx := context.Background()

	task, err := f.svc.CreateTask(ctx, validCreateRequest())
	require.NoError(t, err)

	member := &entities.Member{Name: "Alice"}
	require.NoError(t, f.memberRepo.Create(ctx, member))

	_, err = f.svc.SetAssignment(ctx, task.ID, member.ID, ports.SetAssignmentRequest{Role: entities.RoleMain})
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveAssignment(ctx, task.ID, member.ID))
	// Removing again is a no-op, not an error.
	assert.NoError(t, f.svc.RemoveAssignment(ctx, task.ID, member.ID))
}
