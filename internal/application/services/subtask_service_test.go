package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

func newSubtaskFixture(t *testing.T) (*SubtaskService, *memoryTaskRepo, *memorySubtaskRepo, *entities.Task) {
	t.Helper()

	subtaskRepo := newMemorySubtaskRepo()
	taskRepo := newMemoryTaskRepo(subtaskRepo)
	svc := NewSubtaskService(subtaskRepo, taskRepo, logger.NewNop())

	task := &entities.Task{
		ID:        uuid.New(),
		Title:     "Ship release",
		Status:    entities.StatusInProgress,
		StartDate: entities.NewDate(2026, time.June, 1),
		EndDate:   entities.NewDate(2026, time.June, 5),
	}
	require.NoError(t, taskRepo.Create(context.Background(), task))

	return svc, taskRepo, subtaskRepo, task
}

func TestCreateSubtaskRecomputesProgress(t *testing.T) {
	svc, _, _, task := newSubtaskFixture(t)
	ctx := context.Background()

	first, err := svc.CreateSubtask(ctx, task.ID, ports.CreateSubtaskRequest{Text: "write changelog"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Progress)
	assert.Equal(t, task.ID, first.Subtask.TaskID)

	// Complete the first item, then add a second: 1 of 2 done is 50.
	_, err = svc.ToggleSubtask(ctx, first.Subtask.ID)
	require.NoError(t, err)

	second, err := svc.CreateSubtask(ctx, task.ID, ports.CreateSubtaskRequest{Text: "tag build"})
	require.NoError(t, err)
	assert.Equal(t, 50, second.Progress)
}

func TestCreateSubtaskUnknownTask(t *testing.T) {
	svc, _, _, _ := newSubtaskFixture(t)

	_, err := svc.CreateSubtask(context.Background(), uuid.New(), ports.CreateSubtaskRequest{Text: "orphan"})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestToggleSubtaskProgressSequence(t *testing.T) {
	svc, taskRepo, subtaskRepo, task := newSubtaskFixture(t)
	ctx := context.Background()

	items := make([]*entities.Subtask, 3)
	for i, text := range []string{"a", "b", "c"} {
		st := &entities.Subtask{TaskID: task.ID, Text: text, OrderIndex: i}
		require.NoError(t, subtaskRepo.Create(ctx, st))
		items[i] = st
	}

	// 2 of 3 complete rounds 66.67 up to 67.
	m, err := svc.ToggleSubtask(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33, m.Progress)

	m, err = svc.ToggleSubtask(ctx, items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, m.Progress)

	m, err = svc.ToggleSubtask(ctx, items[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, m.Progress)

	// Untoggling drops it back below completion.
	m, err = svc.ToggleSubtask(ctx, items[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 67, m.Progress)

	stored, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, stored.Progress)
}

func TestUpdateSubtaskTextOnlySkipsRecompute(t *testing.T) {
	svc, taskRepo, subtaskRepo, task := newSubtaskFixture(t)
	ctx := context.Background()

	st := &entities.Subtask{TaskID: task.ID, Text: "draft"}
	require.NoError(t, subtaskRepo.Create(ctx, st))

	// A manual progress value must survive a pure text edit.
	require.NoError(t, taskRepo.UpdateProgress(ctx, task.ID, 80))
	writesBefore := len(taskRepo.progressLog)

	text := "final draft"
	m, err := svc.UpdateSubtask(ctx, st.ID, ports.UpdateSubtaskRequest{Text: &text})
	require.NoError(t, err)

	assert.Equal(t, 80, m.Progress)
	assert.Equal(t, "final draft", m.Subtask.Text)
	assert.Len(t, taskRepo.progressLog, writesBefore)
}

func TestUpdateSubtaskCompletionRecomputes(t *testing.T) {
	svc, _, subtaskRepo, task := newSubtaskFixture(t)
	ctx := context.Background()

	st := &entities.Subtask{TaskID: task.ID, Text: "only item"}
	require.NoError(t, subtaskRepo.Create(ctx, st))

	done := true
	m, err := svc.UpdateSubtask(ctx, st.ID, ports.UpdateSubtaskRequest{Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, 100, m.Progress)
}

func TestDeleteSubtaskRecomputes(t *testing.T) {
	svc, _, subtaskRepo, task := newSubtaskFixture(t)
	ctx := context.Background()

	done := &entities.Subtask{TaskID: task.ID, Text: "done", Completed: true}
	pending := &entities.Subtask{TaskID: task.ID, Text: "pending", OrderIndex: 1}
	require.NoError(t, subtaskRepo.Create(ctx, done))
	require.NoError(t, subtaskRepo.Create(ctx, pending))

	progress, err := svc.DeleteSubtask(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress)
}

func TestRecalculateProgressEmptyChecklistLeavesStoredValue(t *testing.T) {
	svc, taskRepo, _, task := newSubtaskFixture(t)
	ctx := context.Background()

	require.NoError(t, taskRepo.UpdateProgress(ctx, task.ID, 45))
	writesBefore := len(taskRepo.progressLog)

	progress, err := svc.RecalculateProgress(ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, progress)
	assert.Len(t, taskRepo.progressLog, writesBefore)

	stored, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.Progress)
}
