package game

import "sort"

// sortedKeys returns map keys in ascending order so per-tick iteration over
// entity maps is deterministic for a given state.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
