package search

import "container/heap"

// frontier holds discovered cells that have not been expanded yet.
type frontier interface {
	Push(id, priority int)
	Pop() int
	Len() int
}

// queueFrontier is a FIFO queue; priorities are ignored.
type queueFrontier struct {
	items []int
	head  int
}

func newQueueFrontier(capacity int) frontier {
	return &queueFrontier{items: make([]int, 0, capacity)}
}

func (q *queueFrontier) Push(id, _ int) { q.items = append(q.items, id) }

func (q *queueFrontier) Pop() int {
	id := q.items[q.head]
	q.head++
	return id
}

func (q *queueFrontier) Len() int { return len(q.items) - q.head }

// stackFrontier is a LIFO stack; priorities are ignored.
type stackFrontier struct {
	items []int
}

func newStackFrontier(capacity int) frontier {
	return &stackFrontier{items: make([]int, 0, capacity)}
}

func (s *stackFrontier) Push(id, _ int) { s.items = append(s.items, id) }

func (s *stackFrontier) Pop() int {
	n := len(s.items)
	id := s.items[n-1]
	s.items = s.items[:n-1]
	return id
}

func (s *stackFrontier) Len() int { return len(s.items) }

// priorityItem is one queued cell. indexInQueue is maintained by the heap so
// Push can call heap.Fix on a queued cell.
type priorityItem struct {
	id           int
	priority     int
	indexInQueue int
}

// priorityQueue orders by priority, then by cell id.
type priorityQueue []*priorityItem

func (q priorityQueue) Len() int { return len(q) }

func (q priorityQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].id < q[j].id
}

func (q priorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].indexInQueue = i
	q[j].indexInQueue = j
}

func (q *priorityQueue) Push(x any) {
	item := x.(*priorityItem)
	item.indexInQueue = len(*q)
	*q = append(*q, item)
}

func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.indexInQueue = -1
	*q = old[:n-1]
	return item
}

// priorityFrontier is a min-heap keyed by (priority, id). Each cell is queued
// at most once; a cheaper path updates the existing entry in place.
type priorityFrontier struct {
	queue  priorityQueue
	queued map[int]*priorityItem
}

func newPriorityFrontier(capacity int) frontier {
	return &priorityFrontier{
		queue:  make(priorityQueue, 0, capacity),
		queued: make(map[int]*priorityItem, capacity),
	}
}

func (p *priorityFrontier) Push(id, priority int) {
	if item, ok := p.queued[id]; ok {
		item.priority = priority
		heap.Fix(&p.queue, item.indexInQueue)
		return
	}
	item := &priorityItem{id: id, priority: priority}
	heap.Push(&p.queue, item)
	p.queued[id] = item
}

func (p *priorityFrontier) Pop() int {
	item := heap.Pop(&p.queue).(*priorityItem)
	delete(p.queued, item.id)
	return item.id
}

func (p *priorityFrontier) Len() int { return p.queue.Len() }
