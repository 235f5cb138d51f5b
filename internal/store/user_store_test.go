package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/tests/testutil"
)

func TestCreateUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	name := "Alice A."
	u, err := s.CreateUser(ctx, model.User{Username: " alice ", PinHash: "digest", ProfileName: &name})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.LastLogin)
	require.NotNil(t, u.ProfileName)
	assert.Equal(t, name, *u.ProfileName)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, model.User{Username: "alice", PinHash: "other"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = s.CreateUser(ctx, model.User{Username: "bob"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestGetUserAbsent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u, err := s.GetUserByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSoftDeleteUserKeepsRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	deleted, err := s.SoftDeleteUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)

	// Inactive users still hold their username.
	_, err = s.CreateUser(ctx, model.User{Username: "alice", PinHash: "x"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = s.SoftDeleteUser(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserUpdates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	u := testutil.NewTestUser(t, s, "alice")

	logged, err := s.TouchLastLogin(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, logged.LastLogin)

	updated, err := s.SetPinHash(ctx, u.ID, "new-digest")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", updated.PinHash)

	_, err = s.SetPinHash(ctx, u.ID, " ")
	assert.ErrorIs(t, err, model.ErrValidation)

	answer := "blue"
	updated, err = s.UpdateUser(ctx, u.ID, model.UserPatch{RecoveryAnswer: &answer})
	require.NoError(t, err)
	require.NotNil(t, updated.RecoveryAnswer)
	assert.Equal(t, "blue", *updated.RecoveryAnswer)
	assert.Nil(t, updated.ProfileName)

	_, err = s.UpdateUser(ctx, 999, model.UserPatch{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
