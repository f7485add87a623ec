package ecs

import "slices"

// IntersectEntities returns entities present in every set, in ascending slot
// order. A nil set yields nil.
func IntersectEntities(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.denseEntities {
		inAll := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

func sortEntities(ents []Entity) {
	slices.SortFunc(ents, func(a, b Entity) int {
		return int(a.id()) - int(b.id())
	})
}
