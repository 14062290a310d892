package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// AssignmentRepositoryImpl implements the AssignmentRepository interface
type AssignmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *sqlx.DB) ports.AssignmentRepository {
	return &AssignmentRepositoryImpl{db: db}
}

func (r *AssignmentRepositoryImpl) Set(ctx context.Context, assignment *entities.Assignment) error {
	query := `
		INSERT INTO task_assignments (task_id, member_id, role, workload_ratio)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		assignment.TaskID, assignment.MemberID, assignment.Role, assignment.WorkloadRatio)
	if err != nil {
		if isUniqueViolation(err) {
			return entities.ErrDuplicateAssignment
		}
		if isForeignKeyViolation(err) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("set assignment: %w", err)
	}

	return nil
}

// Remove is idempotent: deleting an absent pair is not an error.
func (r *AssignmentRepositoryImpl) Remove(ctx context.Context, taskID, memberID uuid.UUID) error {
	query := `DELETE FROM task_assignments WHERE task_id = $1 AND member_id = $2`

	_, err := r.db.ExecContext(ctx, query, taskID, memberID)
	if err != nil {
		return fmt.Errorf("remove assignment: %w", err)
	}

	return nil
}

func (r *AssignmentRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]entities.Assignment, error) {
	query := `
		SELECT task_id, member_id, role, workload_ratio
		FROM task_assignments
		WHERE task_id = $1`

	assignments := []entities.Assignment{}
	err := r.db.SelectContext(ctx, &assignments, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	return assignments, nil
}
