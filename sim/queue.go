// Implements the ItemQueue, the FIFO of worry levels each worker holds.

package sim

import (
	"fmt"
	"strings"
)

// ItemQueue is a FIFO of item worry levels.
// Items are appended at the back by deliveries and removed from the front by inspection.
type ItemQueue struct {
	items []int64
}

// NewItemQueue returns a queue holding a copy of items in order.
func NewItemQueue(items []int64) *ItemQueue {
	return &ItemQueue{items: append([]int64(nil), items...)}
}

// Enqueue adds an item to the back of the queue.
func (q *ItemQueue) Enqueue(v int64) {
	q.items = append(q.items, v)
}

// Dequeue removes the item at the front of the queue.
// Panics on an empty queue: callers must check Len first.
func (q *ItemQueue) Dequeue() int64 {
	if len(q.items) == 0 {
		panic(fmt.Sprintf("Dequeue: %v", ErrQueueUnderflow))
	}
	v := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// drop the consumed backing array so long runs do not pin it
		q.items = nil
	}
	return v
}

// Len returns the number of queued items.
func (q *ItemQueue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queue contents, front first.
func (q *ItemQueue) Items() []int64 {
	return append([]int64(nil), q.items...)
}

func (q *ItemQueue) clone() *ItemQueue {
	return &ItemQueue{items: append([]int64(nil), q.items...)}
}

func (q *ItemQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range q.items {
		sb.WriteString(fmt.Sprint(v))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Peek returns the item at the front of the queue without removing it.
// The boolean is false on an empty queue.
func (q *ItemQueue) Peek() (int64, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0], true
}
