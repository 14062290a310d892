package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// SubtaskRepositoryImpl implements the SubtaskRepository interface
type SubtaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewSubtaskRepository creates a new subtask repository
func NewSubtaskRepository(db *sqlx.DB) ports.SubtaskRepository {
	return &SubtaskRepositoryImpl{db: db}
}

func (r *SubtaskRepositoryImpl) Create(ctx context.Context, subtask *entities.Subtask) error {
	query := `
		INSERT INTO subtasks (id, task_id, text, completed, order_index)
		VALUES ($1, $2, $3, $4, $5)`

	if subtask.ID == uuid.Nil {
		subtask.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		subtask.ID, subtask.TaskID, subtask.Text, subtask.Completed, subtask.OrderIndex)
	if err != nil {
		if isForeignKeyViolation(err) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("create subtask: %w", err)
	}

	return nil
}

func (r *SubtaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subtask, error) {
	query := `SELECT id, task_id, text, completed, order_index FROM subtasks WHERE id = $1`

	var subtask entities.Subtask
	err := r.db.GetContext(ctx, &subtask, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSubtaskNotFound
		}
		return nil, fmt.Errorf("get subtask by id: %w", err)
	}

	return &subtask, nil
}

func (r *SubtaskRepositoryImpl) Update(ctx context.Context, subtask *entities.Subtask) error {
	query := `
		UPDATE subtasks
		SET text = $2, completed = $3, order_index = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		subtask.ID, subtask.Text, subtask.Completed, subtask.OrderIndex)
	if err != nil {
		return fmt.Errorf("update subtask: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrSubtaskNotFound
	}

	return nil
}

func (r *SubtaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subtasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrSubtaskNotFound
	}

	return nil
}

func (r *SubtaskRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Subtask, error) {
	query := `
		SELECT id, task_id, text, completed, order_index
		FROM subtasks
		WHERE task_id = $1
		ORDER BY order_index ASC`

	subtasks := []*entities.Subtask{}
	err := r.db.SelectContext(ctx, &subtasks, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}

	return subtasks, nil
}

// Postgres error codes
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}
