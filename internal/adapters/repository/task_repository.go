package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

const taskColumns = `id, title, description, status, score, start_date, end_date,
	is_recurring, recurring_type, link, communication_link, progress,
	created_at, updated_at`

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, score, start_date, end_date,
			is_recurring, recurring_type, link, communication_link, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Score,
		task.StartDate, task.EndDate, task.IsRecurring, task.RecurringType,
		task.Link, task.CommunicationLink, task.Progress,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	if err := r.attachChildren(ctx, []*entities.Task{&task}); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, score = $5, start_date = $6,
			end_date = $7, is_recurring = $8, recurring_type = $9, link = $10,
			communication_link = $11, progress = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Score,
		task.StartDate, task.EndDate, task.IsRecurring, task.RecurringType,
		task.Link, task.CommunicationLink, task.Progress,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// subtasks and task_assignments cascade at the store
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if err := r.attachChildren(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	query := `UPDATE tasks SET progress = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, progress)
	if err != nil {
		return fmt.Errorf("update task progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// attachChildren populates subtasks and assignments (with hydrated members)
// for the given tasks in two queries.
func (r *TaskRepositoryImpl) attachChildren(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entities.Task, len(tasks))
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		t.Subtasks = []entities.Subtask{}
		t.Assignments = []entities.Assignment{}
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	subQuery, subArgs, err := sqlx.In(`
		SELECT id, task_id, text, completed, order_index
		FROM subtasks WHERE task_id IN (?)
		ORDER BY order_index ASC`, ids)
	if err != nil {
		return fmt.Errorf("build subtask query: %w", err)
	}
	var subtasks []entities.Subtask
	if err := r.db.SelectContext(ctx, &subtasks, r.db.Rebind(subQuery), subArgs...); err != nil {
		return fmt.Errorf("list subtasks for tasks: %w", err)
	}
	for _, s := range subtasks {
		if t, ok := byID[s.TaskID]; ok {
			t.Subtasks = append(t.Subtasks, s)
		}
	}

	type assignmentRow struct {
		TaskID        uuid.UUID             `db:"task_id"`
		MemberID      uuid.UUID             `db:"member_id"`
		Role          entities.AssigneeRole `db:"role"`
		WorkloadRatio float64               `db:"workload_ratio"`
		Name          string                `db:"name"`
		Avatar        *string               `db:"avatar"`
	}

	asgQuery, asgArgs, err := sqlx.In(`
		SELECT ta.task_id, ta.member_id, ta.role, ta.workload_ratio, m.name, m.avatar
		FROM task_assignments ta
		JOIN members m ON m.id = ta.member_id
		WHERE ta.task_id IN (?)
		ORDER BY m.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("build assignment query: %w", err)
	}
	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(asgQuery), asgArgs...); err != nil {
		return fmt.Errorf("list assignments for tasks: %w", err)
	}
	for _, row := range rows {
		t, ok := byID[row.TaskID]
		if !ok {
			continue
		}
		t.Assignments = append(t.Assignments, entities.Assignment{
			TaskID:        row.TaskID,
			MemberID:      row.MemberID,
			Role:          row.Role,
			WorkloadRatio: row.WorkloadRatio,
			Member: &entities.Member{
				ID:     row.MemberID,
				Name:   row.Name,
				Avatar: row.Avatar,
			},
		})
	}

	return nil
}
