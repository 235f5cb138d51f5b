package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupIDsScanMalformed(t *testing.T) {
	for _, src := range []any{nil, "", "not json", `{"a":1}`, `[1,2]`, 42} {
		var g GroupIDs
		require.NoError(t, g.Scan(src))
		assert.Empty(t, g, "%v", src)
	}
}

func TestGroupIDsValue(t *testing.T) {
	v, err := GroupIDs{"eng", "ops", "eng", ""}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["eng","ops"]`, v)

	v, err = GroupIDs(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var g GroupIDs
	require.NoError(t, g.Scan([]byte(`["eng","ops"]`)))
	assert.Equal(t, GroupIDs{"eng", "ops"}, g)
	assert.True(t, g.Intersects([]string{"x", "ops"}))
	assert.False(t, g.Intersects([]string{"x"}))
}

func TestMemberIDs(t *testing.T) {
	v, err := MemberIDs{3, 1, 3}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[3,1]", v)

	var m MemberIDs
	require.NoError(t, m.Scan(`["a"]`))
	assert.Empty(t, m)

	require.NoError(t, m.Scan("[7,8]"))
	assert.True(t, m.Contains(8))
	assert.False(t, m.Contains(1))
}

func TestSubtasksScanMalformed(t *testing.T) {
	var s Subtasks
	require.NoError(t, s.Scan("[{"))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(`[{"name":"draft","completed":true}]`))
	assert.Equal(t, Subtasks{{Name: "draft", Completed: true}}, s)
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("updating task", "task", 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStorage)
	assert.Equal(t, "updating task: not found: task 9", err.Error())
}
