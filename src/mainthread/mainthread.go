// Package mainthread runs queued functions on a single goroutine.
package mainthread

import "sync"

// Queue runs functions in submission order on whichever goroutine calls
// Loop. Push never blocks, so it's safe to call from inside a queued
// function.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func New() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (q *Queue) Push(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close makes Loop return once the function it is running finishes.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) Loop() {
	for {
		select {
		case <-q.done:
			return
		default:
		}
		if fn := q.next(); fn != nil {
			fn()
			continue
		}
		select {
		case <-q.wake:
		case <-q.done:
			return
		}
	}
}

func (q *Queue) next() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	fn := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return fn
}
