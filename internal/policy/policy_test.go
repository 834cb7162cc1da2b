package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncallops/groupwatch/internal/change"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tracked_keys:
  - whoCanJoin
  - allowExternalMembers
excluded_keys:
  - etag
enforce:
  whoCanJoin: INVITED_CAN_JOIN
  allowExternalMembers: "false"
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"whoCanJoin", "allowExternalMembers"}, p.TrackedKeys)
	assert.Equal(t, []string{"etag"}, p.ExcludedKeys)
	assert.Equal(t, "INVITED_CAN_JOIN", p.Enforce["whoCanJoin"])
}

func TestLoadRejectsEmptyTrackedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("excluded_keys: [etag]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracked_keys")
}

func TestViolations(t *testing.T) {
	p := Policy{
		TrackedKeys: []string{"whoCanJoin"},
		Enforce: map[string]any{
			"whoCanJoin":           "INVITED_CAN_JOIN",
			"allowExternalMembers": "false",
		},
	}

	t.Run("compliant settings yield none", func(t *testing.T) {
		violations := p.Violations(change.Settings{
			"whoCanJoin":           "INVITED_CAN_JOIN",
			"allowExternalMembers": "false",
			"etag":                 "v9",
		})
		assert.Empty(t, violations)
	})

	t.Run("drifted and missing keys are reported in key order", func(t *testing.T) {
		violations := p.Violations(change.Settings{
			"whoCanJoin": "ANYONE_CAN_JOIN",
		})
		require.Len(t, violations, 2)

		assert.Equal(t, "allowExternalMembers", violations[0].Key)
		assert.Nil(t, violations[0].Got)
		assert.Equal(t, "whoCanJoin", violations[1].Key)
		assert.Equal(t, "ANYONE_CAN_JOIN", violations[1].Got)
	})
}

func TestDelta(t *testing.T) {
	assert.Nil(t, Delta(nil))

	delta := Delta([]Violation{
		{Key: "whoCanJoin", Want: "INVITED_CAN_JOIN", Got: "ANYONE_CAN_JOIN"},
	})
	assert.Equal(t, map[string]any{"whoCanJoin": "INVITED_CAN_JOIN"}, delta)
}
