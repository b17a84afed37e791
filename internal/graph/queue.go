package graph

// Item is a priority queue entry: a node index keyed by its cumulative
// weight.
type Item struct {
	Node   int
	Weight float64
}

// PriorityQueue is a binary min-heap over SmallArray storage, keyed by
// Item.Weight. Entries with equal weights pop in unspecified order: heap
// reordering does not preserve insertion order for ties.
type PriorityQueue struct {
	heap SmallArray[Item]
}

// Len returns the number of queued items.
func (q *PriorityQueue) Len() int { return q.heap.Len() }

// Empty reports whether the queue holds no items.
func (q *PriorityQueue) Empty() bool { return q.heap.Empty() }

// Push appends an item and sifts it up to its heap position.
func (q *PriorityQueue) Push(it Item) {
	q.heap.Push(it)
	q.siftUp(q.heap.Len() - 1)
}

// Pop removes and returns the minimum-weight item. ok is false when empty.
func (q *PriorityQueue) Pop() (Item, bool) {
	if q.heap.Empty() {
		return Item{}, false
	}
	last := q.heap.Len() - 1
	q.heap.Swap(0, last)
	it, _ := q.heap.Pop()
	q.siftDown(0)
	return it, true
}

func (q *PriorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.heap.At(i).Weight >= q.heap.At(parent).Weight {
			break
		}
		q.heap.Swap(i, parent)
		i = parent
	}
}

func (q *PriorityQueue) siftDown(i int) {
	n := q.heap.Len()
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && q.heap.At(left).Weight < q.heap.At(smallest).Weight {
			smallest = left
		}
		if right < n && q.heap.At(right).Weight < q.heap.At(smallest).Weight {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.heap.Swap(i, smallest)
		i = smallest
	}
}
