package core

import "sync"

// Dispatcher queues callbacks posted from background goroutines so they
// run on the goroutine that owns a Root.
//
//	go func() {
//	    todos, err := client.List(ctx)
//	    d.Post(func() { setTodos(todos) })
//	}()
//
//	for range d.Ready() {
//	    d.Drain()
//	}
type Dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	ready  chan struct{}
	closed bool
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{ready: make(chan struct{}, 1)}
}

// Post schedules callback. Returns false if the dispatcher is closed or
// callback is nil.
func (d *Dispatcher) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, callback)
	d.mu.Unlock()

	select {
	case d.ready <- struct{}{}:
	default:
	}
	return true
}

// Ready receives a value after callbacks were posted. It is closed by Close.
func (d *Dispatcher) Ready() <-chan struct{} {
	return d.ready
}

// Pending returns the number of queued callbacks.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Drain runs queued callbacks in FIFO order on the calling goroutine until
// the queue is empty, including callbacks posted while draining. Returns
// the number of callbacks run.
func (d *Dispatcher) Drain() int {
	ran := 0
	for {
		d.mu.Lock()
		queue := d.queue
		d.queue = nil
		d.mu.Unlock()
		if len(queue) == 0 {
			return ran
		}
		for _, callback := range queue {
			callback()
			ran++
		}
	}
}

// Close stops accepting callbacks and closes the Ready channel. Queued
// callbacks can still be drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.ready)
}
