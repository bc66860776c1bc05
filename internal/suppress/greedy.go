// Package suppress implements greedy non-maximum suppression.
//
// Iterate is the shared "take the best remaining item, drop its neighborhood,
// repeat" loop. Attention peaks drive it directly over a working copy of the
// map (argmax, then zero a disk). CTA boxes go through Greedy, which runs it
// over a sorted candidate list with an overlap predicate.
package suppress

import "sort"

// Iterate keeps up to limit items; limit <= 0 means no limit.
//
// pick returns the best item still available, or false when none is left.
// Each kept item is passed to suppress, which must remove it and its
// neighborhood from what pick can return next.
func Iterate[T any](limit int, pick func() (T, bool), suppress func(kept T)) []T {
	var kept []T
	for limit <= 0 || len(kept) < limit {
		item, ok := pick()
		if !ok {
			break
		}
		kept = append(kept, item)
		suppress(item)
	}
	if kept == nil {
		kept = []T{}
	}
	return kept
}

// Greedy returns items in order of preference, skipping any item that is
// suppressed by one already kept.
//
// better reports whether a should be considered before b; ties keep the input
// order. suppresses reports whether a kept item eliminates a candidate.
// At most limit items are returned; limit <= 0 means no limit.
func Greedy[T any](items []T, better func(a, b T) bool, suppresses func(kept, candidate T) bool, limit int) []T {
	ordered := make([]T, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return better(ordered[i], ordered[j])
	})

	removed := make([]bool, len(ordered))
	next := 0
	pick := func() (int, bool) {
		for next < len(ordered) && removed[next] {
			next++
		}
		if next == len(ordered) {
			return 0, false
		}
		return next, true
	}
	suppress := func(k int) {
		removed[k] = true
		for j := k + 1; j < len(ordered); j++ {
			if !removed[j] && suppresses(ordered[k], ordered[j]) {
				removed[j] = true
			}
		}
	}

	indices := Iterate(limit, pick, suppress)
	kept := make([]T, len(indices))
	for i, idx := range indices {
		kept[i] = ordered[idx]
	}
	return kept
}
