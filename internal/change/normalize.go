// Package change detects configuration drift via dual content hashing:
// a business hash over the tracked policy keys and a full hash over the
// whole object minus volatile fields.
package change

import (
	"encoding/json"
	"slices"
)

// Settings is one entity's configuration as returned by an upstream API:
// a flat map of scalar values. Callers own the map; nothing here mutates it.
type Settings map[string]any

// Field is a single key/value of a projection. Absent tracked keys carry
// the absent marker so "key missing" hashes differently from "key is null".
type Field struct {
	Key   string
	Value any
}

// Projection is an ordered key/value sequence. Keys are always sorted
// lexicographically, so equal projections serialize byte-identically.
type Projection []Field

// absentMarker stands in for a tracked key that does not exist in the
// settings object. The escaped leading NUL keeps it out of any realistic
// value space.
var absentMarker = json.RawMessage(`"\u0000absent"`)

// ProjectBusiness reduces settings to the tracked policy keys, in sorted
// order. Missing keys are recorded with the absent marker rather than
// dropped, so the business hash is stable across the full tracked key set.
// Empty or nil settings degrade to an empty projection, like ProjectFull.
func ProjectBusiness(settings Settings, trackedKeys []string) Projection {
	if len(settings) == 0 || len(trackedKeys) == 0 {
		return Projection{}
	}

	keys := slices.Clone(trackedKeys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	proj := make(Projection, 0, len(keys))
	for _, key := range keys {
		if v, ok := settings[key]; ok {
			proj = append(proj, Field{Key: key, Value: v})
		} else {
			proj = append(proj, Field{Key: key, Value: absentMarker})
		}
	}
	return proj
}

// ProjectFull emits every key of settings except the excluded ones, sorted.
// Empty or nil settings degrade to an empty projection, never an error.
func ProjectFull(settings Settings, excludedKeys []string) Projection {
	if len(settings) == 0 {
		return Projection{}
	}

	excluded := make(map[string]struct{}, len(excludedKeys))
	for _, key := range excludedKeys {
		excluded[key] = struct{}{}
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		if _, skip := excluded[key]; skip {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	proj := make(Projection, 0, len(keys))
	for _, key := range keys {
		proj = append(proj, Field{Key: key, Value: settings[key]})
	}
	return proj
}
