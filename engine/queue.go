package engine

// measureQueue holds realized leaves whose real height has not been read yet.
type measureQueue struct {
	leaves []*leafNode
}

func (q *measureQueue) push(l *leafNode) {
	q.leaves = append(q.leaves, l)
}

func (q *measureQueue) len() int {
	return len(q.leaves)
}

// take empties the queue and returns what it held.
func (q *measureQueue) take() []*leafNode {
	leaves := q.leaves
	q.leaves = nil
	return leaves
}

// parked is an element whose destruction was deferred for lack of budget.
type parked struct {
	handle Handle
	index  int
	header Handle
}
