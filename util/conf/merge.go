package conf

// MergeDefaults namespaces the keys of each map under ns and merges
// them into a single map. Later maps win on conflicting keys.
func MergeDefaults[M ~map[string]V, V any](ns string, maps ...M) M {
	fullCap := 0
	for _, m := range maps {
		fullCap += len(m)
	}

	merged := make(M, fullCap)
	for _, m := range maps {
		for key, val := range m {
			merged[ns+"."+key] = val
		}
	}

	return merged
}

// Combine merges flat default maps. Later maps win on conflicting keys.
func Combine(maps ...DefaultConfig) DefaultConfig {
	merged := DefaultConfig{}
	for _, m := range maps {
		for key, val := range m {
			merged[key] = val
		}
	}

	return merged
}
