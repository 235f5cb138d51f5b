package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/tests/testutil"
)

func TestCreateTeamMember(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	m, err := s.CreateTeamMember(ctx, u.ID, model.TeamMember{
		Name:  "Ann",
		Role:  "Engineer",
		Email: "ann@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, u.ID, m.UserID)
	assert.Equal(t, model.MemberStatusFree, m.Status)
	assert.Empty(t, m.GroupIDs)

	_, err = s.CreateTeamMember(ctx, u.ID, model.TeamMember{Name: "No Email"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.CreateTeamMember(ctx, u.ID, model.TeamMember{Name: "Bad", Email: "a@b.c", Status: "Asleep"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCreateTeamMemberDuplicateEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, s, "alice")
	bob := testutil.NewTestUser(t, s, "bob")

	_, err := s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ann Again", Email: "ann@example.com"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	members, err := s.GetTeamMembers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	// Uniqueness is per owning user and case-sensitive.
	_, err = s.CreateTeamMember(ctx, bob.ID, model.TeamMember{Name: "Ann", Email: "ann@example.com"})
	assert.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ann", Email: "Ann@example.com"})
	assert.NoError(t, err)
}

func TestUpdateTeamMember(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	ann, err := s.CreateTeamMember(ctx, u.ID, model.TeamMember{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, u.ID, model.TeamMember{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)

	status := model.MemberStatusOccupied
	role := "Lead"
	updated, err := s.UpdateTeamMember(ctx, ann.ID, model.TeamMemberPatch{Status: &status, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusOccupied, updated.Status)
	assert.Equal(t, "Lead", updated.Role)
	assert.Equal(t, "Ann", updated.Name)

	taken := "ben@example.com"
	_, err = s.UpdateTeamMember(ctx, ann.ID, model.TeamMemberPatch{Email: &taken})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = s.UpdateTeamMember(ctx, 999, model.TeamMemberPatch{Role: &role})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGetTeamMembersByGroups(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, s, "alice")
	bob := testutil.NewTestUser(t, s, "bob")

	design := model.NewGroupID()
	ann, err := s.CreateTeamMember(ctx, alice.ID, model.TeamMember{
		Name: "Ann", Email: "ann@example.com", GroupIDs: model.GroupIDs{"eng"},
	})
	require.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, bob.ID, model.TeamMember{
		Name: "Cat", Email: "cat@example.com", GroupIDs: model.GroupIDs{"eng"},
	})
	require.NoError(t, err)

	found, err := s.GetTeamMembersByGroups(ctx, alice.ID, []string{design})
	require.NoError(t, err)
	assert.Empty(t, found)

	groups := model.GroupIDs{"eng", design}
	_, err = s.UpdateTeamMember(ctx, ann.ID, model.TeamMemberPatch{GroupIDs: &groups})
	require.NoError(t, err)

	found, err = s.GetTeamMembersByGroups(ctx, alice.ID, []string{design})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ann.ID, found[0].ID)

	found, err = s.GetTeamMembersByGroups(ctx, alice.ID, []string{"eng"})
	require.NoError(t, err)
	assert.Len(t, found, 1, "other users' members are excluded")

	groups = model.GroupIDs{"eng"}
	_, err = s.UpdateTeamMember(ctx, ann.ID, model.TeamMemberPatch{GroupIDs: &groups})
	require.NoError(t, err)

	found, err = s.GetTeamMembersByGroups(ctx, alice.ID, []string{design})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDeleteTeamMembers(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, s, "alice")
	bob := testutil.NewTestUser(t, s, "bob")

	ann, err := s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, alice.ID, model.TeamMember{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)
	_, err = s.CreateTeamMember(ctx, bob.ID, model.TeamMember{Name: "Cat", Email: "cat@example.com"})
	require.NoError(t, err)

	deleted, err := s.DeleteTeamMember(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", deleted.Name)

	got, err := s.GetTeamMemberByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.DeleteTeamMember(ctx, ann.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	all, err := s.DeleteAllTeamMembers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ben", all[0].Name)

	remaining, err := s.GetTeamMembers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
