package tools

import (
	"slices"
)

// SortedKeys returns the keys of a map[string]T in lexicographic order.
func SortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
