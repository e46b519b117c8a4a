package movemode

// Queue holds work deferred while a drag is in progress, in arrival order,
// up to a fixed limit.
type Queue[T any] struct {
	items []T
	limit int
}

// NewQueue creates a queue holding at most limit items. A limit below one
// drops everything.
func NewQueue[T any](limit int) *Queue[T] {
	return &Queue[T]{limit: limit}
}

// SetLimit changes the capacity for subsequent pushes.
func (q *Queue[T]) SetLimit(limit int) {
	q.limit = limit
}

// Push appends v. It returns false when the queue is full and v was dropped.
func (q *Queue[T]) Push(v T) bool {
	if len(q.items) >= q.limit {
		return false
	}
	q.items = append(q.items, v)
	return true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Drain removes and returns every queued item, oldest first.
func (q *Queue[T]) Drain() []T {
	out := q.items
	q.items = nil
	return out
}
