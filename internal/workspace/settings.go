package workspace

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/api/groupssettings/v1"

	"github.com/oncallops/groupwatch/internal/change"
)

// SettingsAPI reads and patches one group's settings object. Get returns the
// flattened settings together with the API's ETag, which the pipeline uses
// as a cheap pre-check before re-hashing.
type SettingsAPI interface {
	Get(ctx context.Context, groupEmail string) (change.Settings, string, error)
	Patch(ctx context.Context, groupEmail string, delta map[string]any) error
}

// GroupsSettings wraps the Groups Settings API.
type GroupsSettings struct {
	svc *groupssettings.Service
}

func NewGroupsSettings(svc *groupssettings.Service) *GroupsSettings {
	return &GroupsSettings{svc: svc}
}

func (c *GroupsSettings) Get(ctx context.Context, groupEmail string) (change.Settings, string, error) {
	obj, err := c.svc.Groups.Get(groupEmail).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get settings for %s: %w", groupEmail, err)
	}

	settings, err := FlattenSettings(obj)
	if err != nil {
		return nil, "", fmt.Errorf("failed to flatten settings for %s: %w", groupEmail, err)
	}
	return settings, responseEtag(obj), nil
}

// responseEtag pulls the version token out of the response headers. The
// settings body itself carries no etag field, so the flattened map never
// contains one.
func responseEtag(obj *groupssettings.Groups) string {
	if obj == nil {
		return ""
	}
	return obj.Header.Get("Etag")
}

func (c *GroupsSettings) Patch(ctx context.Context, groupEmail string, delta map[string]any) error {
	if len(delta) == 0 {
		return nil
	}

	raw, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to encode patch for %s: %w", groupEmail, err)
	}
	var patch groupssettings.Groups
	if err := json.Unmarshal(raw, &patch); err != nil {
		return fmt.Errorf("failed to build patch for %s: %w", groupEmail, err)
	}

	if _, err := c.svc.Groups.Patch(groupEmail, &patch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to patch settings for %s: %w", groupEmail, err)
	}
	return nil
}

// FlattenSettings converts an API settings object into the flat scalar map
// the hasher consumes. Nested objects and arrays are dropped; the Groups
// Settings resource is flat in practice, so this only guards against future
// API additions.
func FlattenSettings(obj *groupssettings.Groups) (change.Settings, error) {
	if obj == nil {
		return change.Settings{}, nil
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	settings := make(change.Settings, len(generic))
	for key, value := range generic {
		switch value.(type) {
		case string, float64, bool, nil:
			settings[key] = value
		}
	}
	return settings, nil
}
