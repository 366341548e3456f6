// Defines the Worker: a FIFO of items plus the Operation and RoutingTest it applies.

package sim

import "fmt"

// Emitter hands an inspected item to the WorkerSet for delivery.
// A non-nil error aborts the drain before the item leaves the source queue.
type Emitter func(target int, value int64) error

// Worker owns an ordered queue of worry levels, one Operation, one RoutingTest,
// and an inspection counter that only ever increases.
type Worker struct {
	Index       int // position in the WorkerSet
	Queue       ItemQueue
	Operation   Operation
	Test        RoutingTest
	Inspections int64
}

// Drain inspects items until the queue is empty, including items delivered
// back to this worker while draining. An item routed back to this worker
// with the worry level it entered with would be inspected forever, so it
// stops the drain with ErrSelfRouteCycle.
func (w *Worker) Drain(s WorrySuppressor, emit Emitter) (int, error) {
	return w.drain(-1, s, emit)
}

// DrainSnapshot inspects only the items queued when the call starts.
// Items delivered back to this worker meanwhile stay queued.
func (w *Worker) DrainSnapshot(s WorrySuppressor, emit Emitter) (int, error) {
	return w.drain(w.Queue.Len(), s, emit)
}

// drain inspects at most limit items (limit < 0 = until empty) and returns
// the number inspected. Each item is popped only after emit accepted it, so
// a failed delivery leaves the item where it was.
func (w *Worker) drain(limit int, s WorrySuppressor, emit Emitter) (int, error) {
	n := 0
	for limit < 0 || n < limit {
		old, ok := w.Queue.Peek()
		if !ok {
			if limit >= 0 {
				return n, fmt.Errorf("%w: expected %d items, found %d", ErrQueueUnderflow, limit, n)
			}
			break
		}
		raised, err := w.Operation.Evaluate(old)
		if err != nil {
			return n, err
		}
		value := s.Suppress(raised)
		target := w.Test.Route(value)
		if limit < 0 && target == w.Index && value == old {
			return n, fmt.Errorf("%w: worry level %d", ErrSelfRouteCycle, value)
		}
		if err := emit(target, value); err != nil {
			return n, err
		}
		w.Queue.Dequeue()
		w.Inspections++
		n++
	}
	return n, nil
}
