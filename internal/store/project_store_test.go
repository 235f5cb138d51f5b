package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/tests/testutil"
)

func TestCreateProjectDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	p, err := s.CreateProject(ctx, u.ID, model.Project{Name: "Launch", Progress: 140})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusActive, p.Status)
	assert.Equal(t, 100, p.Progress)
	assert.Empty(t, p.AssignedMembers)

	_, err = s.CreateProject(ctx, u.ID, model.Project{Name: "  "})
	assert.ErrorIs(t, err, model.ErrValidation)

	bad := "next week"
	_, err = s.CreateProject(ctx, u.ID, model.Project{Name: "Dated", StartDate: &bad})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAssignTeamMembersReplaces(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	p, err := s.CreateProject(ctx, u.ID, model.Project{Name: "Launch"})
	require.NoError(t, err)

	p, err = s.AssignTeamMembersToProject(ctx, p.ID, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, model.MemberIDs{1, 2}, p.AssignedMembers)

	p, err = s.AssignTeamMembersToProject(ctx, p.ID, []int64{3})
	require.NoError(t, err)
	assert.Equal(t, model.MemberIDs{3}, p.AssignedMembers)

	got, err := s.GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberIDs{3}, got.AssignedMembers)

	byMember, err := s.GetProjectsByMember(ctx, u.ID, 3)
	require.NoError(t, err)
	assert.Len(t, byMember, 1)
	byMember, err = s.GetProjectsByMember(ctx, u.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, byMember)

	p, err = s.AssignTeamMembersToProject(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, p.AssignedMembers)

	_, err = s.AssignTeamMembersToProject(ctx, 999, []int64{1})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateAndDeleteProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	p, err := s.CreateProject(ctx, u.ID, model.Project{Name: "Launch", Description: "v1"})
	require.NoError(t, err)
	_, err = s.CreateMilestone(ctx, u.ID, p.ID, model.Milestone{Name: "Beta", DueDate: "2024-03-01"})
	require.NoError(t, err)

	status := model.ProjectStatusCompleted
	progress := -3
	updated, err := s.UpdateProject(ctx, p.ID, model.ProjectPatch{Status: &status, Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusCompleted, updated.Status)
	assert.Equal(t, 0, updated.Progress)
	assert.Equal(t, "v1", updated.Description)

	_, err = s.UpdateProject(ctx, 999, model.ProjectPatch{Status: &status})
	assert.ErrorIs(t, err, model.ErrNotFound)

	deleted, err := s.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	milestones, err := s.GetMilestonesByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, milestones, "milestones cascade with their project")

	projects, err := s.GetProjects(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
