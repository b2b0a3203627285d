package event

// Queue is a single-producer, single-consumer record queue used inside one
// tick: one system pushes, a later system drains. Drain hands each record out
// exactly once.
type Queue[T any] struct {
	items []T
}

func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, capacity)}
}

func (q *Queue[T]) Push(v T) { q.items = append(q.items, v) }

func (q *Queue[T]) Len() int { return len(q.items) }

// Drain calls fn for every queued record in push order, then empties the
// queue. Records pushed by fn itself are kept for the next drain.
func (q *Queue[T]) Drain(fn func(T)) {
	batch := q.items
	q.items = make([]T, 0, cap(batch))
	for _, v := range batch {
		fn(v)
	}
}

// Reset discards queued records.
func (q *Queue[T]) Reset() { q.items = q.items[:0] }
