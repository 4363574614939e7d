package astar

// item is a frontier entry: an arena node with its priority keys.
// index is maintained by the heap so entries can be re-prioritized in place.
type item struct {
	node  int // arena index
	f     int // g + h
	g     int // path cost
	seq   int // insertion order
	index int // position in the heap
}

// frontier is a min-heap of *item ordered by f, then g, then seq, all
// ascending. seq is unique, so the order is total and the pop sequence is
// deterministic.
type frontier []*item

// Len returns the number of items in the heap.
func (pq frontier) Len() int { return len(pq) }

// Less orders by f, then g, then insertion order.
func (pq frontier) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}

	return a.seq < b.seq
}

// Swap swaps two elements and keeps their indices in sync.
func (pq frontier) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x onto the heap. Called by heap.Push; x must be *item.
func (pq *frontier) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]

	return it
}
