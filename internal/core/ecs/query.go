package ecs

// Each2 visits entities present in both stores, in ascending ID order of the
// smaller store.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	var ids []EntityID
	if sa.Len() <= sb.Len() {
		ids = sa.begin()
		defer sa.end()
	} else {
		ids = sb.begin()
		defer sb.end()
	}
	for _, id := range ids {
		a, okA := sa.data[id]
		b, okB := sb.data[id]
		if okA && okB {
			fn(id, a, b)
		}
	}
}
