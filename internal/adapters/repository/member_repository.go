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

// MemberRepositoryImpl implements the MemberRepository interface
type MemberRepositoryImpl struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sqlx.DB) ports.MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *entities.Member) error {
	query := `
		INSERT INTO members (id, name, avatar)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query, member.ID, member.Name, member.Avatar).
		Scan(&member.CreatedAt)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	query := `SELECT id, name, avatar, created_at FROM members WHERE id = $1`

	var member entities.Member
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member by id: %w", err)
	}

	return &member, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, member *entities.Member) error {
	query := `UPDATE members SET name = $2, avatar = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, member.ID, member.Name, member.Avatar)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrMemberNotFound
	}

	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	// task_assignments rows referencing the member cascade at the store
	query := `DELETE FROM members WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrMemberNotFound
	}

	return nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context) ([]*entities.Member, error) {
	query := `SELECT id, name, avatar, created_at FROM members ORDER BY name ASC`

	members := []*entities.Member{}
	err := r.db.SelectContext(ctx, &members, query)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}
