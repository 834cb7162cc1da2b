package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffEmptyBaselineMarksEverythingNew(t *testing.T) {
	fresh := HashState{
		"list-eng@corp.test": {BusinessHash: "b1", FullHash: "f1"},
		"list-hr@corp.test":  {BusinessHash: "b2", FullHash: "f2"},
	}
	order := []string{"list-eng@corp.test", "list-hr@corp.test"}

	changes := Diff(HashState{}, fresh, order)
	require.Len(t, changes, 2)
	for i, c := range changes {
		assert.Equal(t, order[i], c.EntityID)
		assert.True(t, c.New)
		assert.True(t, c.Business)
		assert.True(t, c.Full)
	}
}

func TestDiffIdenticalMapsYieldNoChanges(t *testing.T) {
	state := HashState{
		"list-eng@corp.test": {BusinessHash: "b1", FullHash: "f1"},
	}
	copied := HashState{
		"list-eng@corp.test": {BusinessHash: "b1", FullHash: "f1"},
	}

	assert.Empty(t, Diff(state, copied, []string{"list-eng@corp.test"}))
}

func TestDiffIndependentProjectionFlags(t *testing.T) {
	old := HashState{
		"a": {BusinessHash: "b1", FullHash: "f1"},
		"b": {BusinessHash: "b2", FullHash: "f2"},
	}
	fresh := HashState{
		"a": {BusinessHash: "b1", FullHash: "f1-noise"},
		"b": {BusinessHash: "b2-policy", FullHash: "f2-policy"},
	}

	changes := Diff(old, fresh, []string{"a", "b"})
	require.Len(t, changes, 2)

	assert.False(t, changes[0].Business, "noisy field alone must not flag business")
	assert.True(t, changes[0].Full)
	assert.False(t, changes[0].New)

	assert.True(t, changes[1].Business)
	assert.True(t, changes[1].Full)
}

func TestDiffIgnoresRemovedEntities(t *testing.T) {
	old := HashState{
		"gone@corp.test": {BusinessHash: "b", FullHash: "f"},
	}
	changes := Diff(old, HashState{}, nil)
	assert.Empty(t, changes)
}

func TestDiffFollowsCallerOrder(t *testing.T) {
	fresh := HashState{
		"c": {BusinessHash: "b", FullHash: "f"},
		"a": {BusinessHash: "b", FullHash: "f"},
		"b": {BusinessHash: "b", FullHash: "f"},
	}
	order := []string{"c", "a", "b"}

	changes := Diff(HashState{}, fresh, order)
	require.Len(t, changes, 3)
	for i, c := range changes {
		assert.Equal(t, order[i], c.EntityID)
	}
}
