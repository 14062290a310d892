package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// MemberService handles member-related operations
type MemberService struct {
	memberRepo ports.MemberRepository
	logger     *logger.Logger
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo ports.MemberRepository, logger *logger.Logger) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// CreateMember creates a new member
func (s *MemberService) CreateMember(ctx context.Context, req ports.CreateMemberRequest) (*entities.Member, error) {
	member := &entities.Member{
		Name:   req.Name,
		Avatar: req.Avatar,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.logger.Infow("Member created", "member_id", member.ID, "name", member.Name)

	return member, nil
}

// GetMember retrieves a member by ID
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*entities.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return member, nil
}

// UpdateMember updates a member's name or avatar
func (s *MemberService) UpdateMember(ctx context.Context, id uuid.UUID, req ports.UpdateMemberRequest) (*entities.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Avatar != nil {
		member.Avatar = req.Avatar
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	s.logger.Infow("Member updated", "member_id", member.ID, "name", member.Name)

	return member, nil
}

// DeleteMember removes a member. Assignments referencing the member are
// cascade-deleted by the store.
func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Member deleted", "member_id", id)

	return nil
}

// ListMembers runs the filter -> sort -> paginate pipeline over the full
// member collection. Reads against an unreachable store degrade to an
// empty list instead of failing.
func (s *MemberService) ListMembers(ctx context.Context, filter ports.MemberListFilter) (listview.Page[*entities.Member], error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return listview.Page[*entities.Member]{}, fmt.Errorf("failed to list members: %w", err)
	}

	filtered := listview.FilterMembers(members, filter.Search)
	sorted := listview.SortMembers(filtered, filter.SortBy, filter.SortOrder)
	return listview.Paginate(sorted, filter.Page, filter.PageSize), nil
}
