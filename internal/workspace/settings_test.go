package workspace

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/groupssettings/v1"
)

func TestFlattenSettings(t *testing.T) {
	obj := &groupssettings.Groups{
		Email:                "list-eng@corp.test",
		WhoCanJoin:           "INVITED_CAN_JOIN",
		AllowExternalMembers: "false",
	}

	settings, err := FlattenSettings(obj)
	require.NoError(t, err)

	assert.Equal(t, "list-eng@corp.test", settings["email"])
	assert.Equal(t, "INVITED_CAN_JOIN", settings["whoCanJoin"])
	assert.Equal(t, "false", settings["allowExternalMembers"])

	// The version token lives in the response headers, never in the body.
	assert.NotContains(t, settings, "etag")

	// Zero-valued fields are omitted by the API encoding, not emitted empty.
	assert.NotContains(t, settings, "whoCanPostMessage")
}

func TestFlattenSettingsNil(t *testing.T) {
	settings, err := FlattenSettings(nil)
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestResponseEtag(t *testing.T) {
	obj := &groupssettings.Groups{
		ServerResponse: googleapi.ServerResponse{
			Header: http.Header{"Etag": []string{`"abc123"`}},
		},
	}
	assert.Equal(t, `"abc123"`, responseEtag(obj))

	assert.Empty(t, responseEtag(&groupssettings.Groups{}))
	assert.Empty(t, responseEtag(nil))
}
