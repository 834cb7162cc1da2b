// Package policy loads the watch policy: which settings keys matter, which
// are volatile, and which values are enforced.
package policy

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/oncallops/groupwatch/internal/change"
)

// Policy drives one sync run. TrackedKeys feeds the business hash,
// ExcludedKeys is subtracted from the full hash, and Enforce lists the
// settings values every group is required to carry.
type Policy struct {
	TrackedKeys  []string       `yaml:"tracked_keys"`
	ExcludedKeys []string       `yaml:"excluded_keys"`
	Enforce      map[string]any `yaml:"enforce"`
}

// Default mirrors the keys the tool has always watched on Google Groups
// settings objects.
func Default() Policy {
	return Policy{
		TrackedKeys: []string{
			"whoCanJoin",
			"whoCanViewMembership",
			"whoCanViewGroup",
			"whoCanPostMessage",
			"allowExternalMembers",
			"whoCanContactOwner",
		},
		// The etag never reaches the settings map (it arrives as a response
		// header), so only the kind discriminator needs excluding.
		ExcludedKeys: []string{"kind"},
	}
}

// Load reads a YAML policy file.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy %s: %w", path, err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

func (p Policy) Validate() error {
	if len(p.TrackedKeys) == 0 {
		return fmt.Errorf("tracked_keys must not be empty")
	}
	for key := range p.Enforce {
		if key == "" {
			return fmt.Errorf("enforce contains an empty key")
		}
	}
	return nil
}

// Violation is one enforced key whose current value differs from the
// required one. Got is nil when the key is missing entirely.
type Violation struct {
	Key  string
	Want any
	Got  any
}

// Violations checks settings against the enforced values. It is independent
// of hash comparison: an unchanged hash does not skip this check, because a
// violating value can be the steady state.
func (p Policy) Violations(settings change.Settings) []Violation {
	if len(p.Enforce) == 0 {
		return nil
	}

	keys := make([]string, 0, len(p.Enforce))
	for key := range p.Enforce {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var out []Violation
	for _, key := range keys {
		want := p.Enforce[key]
		got, ok := settings[key]
		if !ok {
			out = append(out, Violation{Key: key, Want: want, Got: nil})
			continue
		}
		if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			out = append(out, Violation{Key: key, Want: want, Got: got})
		}
	}
	return out
}

// Delta builds the minimal patch that repairs the given violations.
func Delta(violations []Violation) map[string]any {
	if len(violations) == 0 {
		return nil
	}
	delta := make(map[string]any, len(violations))
	for _, v := range violations {
		delta[v.Key] = v.Want
	}
	return delta
}
