package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/team-tracker/internal/auth"
	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/tests/testutil"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(testutil.NewTestStore(t), nil, bcrypt.MinCost)
}

func strPtr(s string) *string { return &s }

func TestCreateUserHashesPin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "alice", "1234", strPtr("Alice"), strPtr("blue"))
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "1234", u.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte("1234")))
	assert.Nil(t, u.LastLogin)

	_, err = svc.CreateUser(ctx, "alice", "9999", nil, nil)
	assert.ErrorIs(t, err, model.ErrDuplicate)

	_, err = svc.CreateUser(ctx, "bob", "", nil, nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.CreateUser(ctx, "  ", "1234", nil, nil)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestLoginUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "1234", nil, nil)
	require.NoError(t, err)

	u, err := svc.LoginUser(ctx, "alice", "1234")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotNil(t, u.LastLogin)

	u, err = svc.LoginUser(ctx, "alice", "0000")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.LoginUser(ctx, "nobody", "1234")
	require.NoError(t, err)
	assert.Nil(t, u)

	deleted, err := svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	u, err = svc.LoginUser(ctx, "alice", "1234")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestResetPin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "1234", nil, strPtr("Blue"))
	require.NoError(t, err)

	// Answers compare case-sensitively.
	u, err := svc.ResetPin(ctx, "alice", "blue", "5678")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.ResetPin(ctx, "alice", "Blue", "5678")
	require.NoError(t, err)
	require.NotNil(t, u)

	u, err = svc.LoginUser(ctx, "alice", "1234")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.LoginUser(ctx, "alice", "5678")
	require.NoError(t, err)
	assert.NotNil(t, u)

	u, err = svc.ResetPin(ctx, "nobody", "Blue", "5678")
	require.NoError(t, err)
	assert.Nil(t, u)

	_, err = svc.ResetPin(ctx, "alice", "Blue", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestResetPinWithoutRecoveryAnswer(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "1234", nil, nil)
	require.NoError(t, err)

	u, err := svc.ResetPin(ctx, "alice", "", "5678")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestResetPinInactiveUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice", "1234", nil, strPtr("Blue"))
	require.NoError(t, err)
	_, err = svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	u, err := svc.ResetPin(ctx, "alice", "Blue", "5678")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc := newService(t)

	_, err := svc.DeleteUser(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
