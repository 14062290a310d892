package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/domain/listview"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

func newMemberFixture() (*MemberService, *memoryMemberRepo) {
	repo := newMemoryMemberRepo()
	return NewMemberService(repo, logger.NewNop()), repo
}

func TestCreateMember(t *testing.T) {
	svc, _ := newMemberFixture()

	avatar := "https://cdn.example.com/a.png"
	member, err := svc.CreateMember(context.Background(), ports.CreateMemberRequest{
		Name:   "Alice Tanaka",
		Avatar: &avatar,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, member.ID)
	assert.Equal(t, "Alice Tanaka", member.Name)
	require.NotNil(t, member.Avatar)
	assert.Equal(t, avatar, *member.Avatar)
}

func TestUpdateMemberPartialApply(t *testing.T) {
	svc, repo := newMemberFixture()
	ctx := context.Background()

	avatar := "https://cdn.example.com/old.png"
	member := &entities.Member{Name: "Ben", Avatar: &avatar}
	require.NoError(t, repo.Create(ctx, member))

	name := "Ben Sato"
	updated, err := svc.UpdateMember(ctx, member.ID, ports.UpdateMemberRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ben Sato", updated.Name)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, avatar, *updated.Avatar)
}

func TestUpdateMemberUnknownID(t *testing.T) {
	svc, _ := newMemberFixture()

	name := "ghost"
	_, err := svc.UpdateMember(context.Background(), uuid.New(), ports.UpdateMemberRequest{Name: &name})
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)
}

func TestDeleteMember(t *testing.T) {
	svc, repo := newMemberFixture()
	ctx := context.Background()

	member := &entities.Member{Name: "Chika"}
	require.NoError(t, repo.Create(ctx, member))

	require.NoError(t, svc.DeleteMember(ctx, member.ID))
	assert.ErrorIs(t, svc.DeleteMember(ctx, member.ID), entities.ErrMemberNotFound)
}

func TestListMembersPipeline(t *testing.T) {
	svc, repo := newMemberFixture()
	ctx := context.Background()

	for _, name := range []string{"Alice Tanaka", "Ben Sato", "Alicia Keys", "Chika Suzuki"} {
		require.NoError(t, repo.Create(ctx, &entities.Member{Name: name}))
	}

	page, err := svc.ListMembers(ctx, ports.MemberListFilter{
		Search:    "ali",
		SortBy:    listview.MemberColumnName,
		SortOrder: listview.Descending,
		Page:      1,
		PageSize:  10,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alicia Keys", page.Items[0].Name)
	assert.Equal(t, "Alice Tanaka", page.Items[1].Name)
	assert.Equal(t, 2, page.Total)
}
