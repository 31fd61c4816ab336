package plansearch

import "container/heap"

type openListItem struct {
	Handle   Handle
	Priority float64
	Sequence uint64
}

type openListQueue []openListItem

func (queue openListQueue) Len() int { return len(queue) }

// Less breaks priority ties by insertion order (FIFO).
func (queue openListQueue) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Sequence < queue[j].Sequence
}

func (queue openListQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *openListQueue) Push(x any) {
	*queue = append(*queue, x.(openListItem))
}

func (queue *openListQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	*queue = oldQueue[:n-1]
	return item
}

// HeapOpenList is a binary-heap OpenList. Entries with equal priority are
// popped in the order they were inserted.
type HeapOpenList struct {
	queue    openListQueue
	sequence uint64
}

// NewHeapOpenList returns an empty HeapOpenList.
func NewHeapOpenList() *HeapOpenList {
	return &HeapOpenList{}
}

// Insert adds an entry. Duplicate handles are kept as separate entries.
func (openList *HeapOpenList) Insert(handle Handle, priority float64) {
	openList.sequence++
	heap.Push(&openList.queue, openListItem{Handle: handle, Priority: priority, Sequence: openList.sequence})
}

// Pop removes the entry with the lowest priority. It panics on an empty list.
func (openList *HeapOpenList) Pop() Handle {
	return heap.Pop(&openList.queue).(openListItem).Handle
}

// Len returns the number of queued entries, duplicates included.
func (openList *HeapOpenList) Len() int {
	return openList.queue.Len()
}

// Reset drops every entry.
func (openList *HeapOpenList) Reset() {
	openList.queue = openList.queue[:0]
}
