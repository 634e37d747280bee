package svy

// Grouped reduction over record slices: partition by a key function, apply
// a pure reduction per group, reassemble in a stable order. Group-wise
// estimation subsets one shared Design by the group's row indices.

// GroupBy partitions rows by key. Keys come back in first-seen order so a
// rerun over the same input produces the same table order.
func GroupBy[R any, K comparable](rows []R, key func(r R) K) ([]K, map[K][]R) {
	groups := make(map[K][]R)

	var keys []K
	for _, r := range rows {
		k := key(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], r)
	}

	return keys, groups
}

// GroupIndex partitions row indices by key, the form estimation wants: the
// indices select matching rows out of value vectors and the Design alike.
func GroupIndex[R any, K comparable](rows []R, key func(r R) K) ([]K, map[K][]int) {
	groups := make(map[K][]int)

	var keys []K
	for ind, r := range rows {
		k := key(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], ind)
	}

	return keys, groups
}

// WithLevels extends keys with predeclared levels so groups with no
// matching records still appear (with an empty index set) instead of being
// dropped. Levels not already present are appended in their declared order.
func WithLevels[K comparable](keys []K, groups map[K][]int, levels []K) ([]K, map[K][]int) {
	for _, lv := range levels {
		if _, ok := groups[lv]; ok {
			continue
		}

		keys = append(keys, lv)
		groups[lv] = nil
	}

	return keys, groups
}

// Mask turns a group's row indices into a keep-mask of length n.
func Mask(n int, indices []int) []bool {
	keep := make([]bool, n)
	for _, ind := range indices {
		keep[ind] = true
	}

	return keep
}

// GroupEstimate runs one statistic per group: the Design and the value
// vector are subset to each group's rows and est is applied to the pair.
// Empty groups (predeclared levels with no rows) yield unknown estimates.
func GroupEstimate[K comparable](d *Design, v *Vector, keys []K, groups map[K][]int,
	est func(d *Design, v *Vector) Estimate) map[K]Estimate {
	out := make(map[K]Estimate, len(keys))

	for _, k := range keys {
		idx := groups[k]
		if len(idx) == 0 {
			out[k] = UnknownEstimate()
			continue
		}

		keep := Mask(v.Len(), idx)
		out[k] = est(d.Subset(keep), v.Where(keep))
	}

	return out
}
