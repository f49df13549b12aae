// pkg/render/queue.go
package render

import "sync"

// Queue is a Sink that buffers the presentation stream for a consumer on
// another goroutine, typically a UI loop. Sends never block. Reset discards
// anything the consumer has not drained yet.
type Queue struct {
	mu      sync.Mutex
	pending []any
	notify  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Reset implements Sink.
func (q *Queue) Reset(s Scene) {
	q.mu.Lock()
	q.pending = []any{s}
	q.mu.Unlock()
	q.signal()
}

// Update implements Sink.
func (q *Queue) Update(f Frame) {
	q.push(f)
}

// Report implements Sink.
func (q *Queue) Report(s Summary) {
	q.push(s)
}

func (q *Queue) push(m any) {
	q.mu.Lock()
	q.pending = append(q.pending, m)
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Notify fires after new messages have been queued.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}

// Drain returns the queued Scene, Frame and Summary values in arrival order
// and empties the queue.
func (q *Queue) Drain() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
