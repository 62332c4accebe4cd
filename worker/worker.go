// Package worker runs blocking fetches off the interactive goroutine.
//
// Submit never blocks the caller. Results come back as futures; the caller
// decides on which goroutine to consume them, so state owned by the
// interactive loop is only ever touched there.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// ErrClosed is the result of tasks submitted after Close.
var ErrClosed = errors.New("worker is closed")

// Worker executes submitted tasks on a bounded set of goroutines.
// Tasks start in submission order but may finish in any order.
type Worker struct {
	ctx    context.Context
	cancel context.CancelFunc
	pool   *pool.Pool

	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// New starts a worker running at most n tasks at once.
func New(n int) *Worker {
	if n < 1 {
		n = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:    ctx,
		cancel: cancel,
		pool:   pool.New().WithMaxGoroutines(n),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go w.dispatch()
	return w
}

func (w *Worker) enqueue(task func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}

	w.queue = append(w.queue, task)
	w.signal()
	return true
}

func (w *Worker) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// dispatch hands queued tasks to the pool. pool.Go blocks while the pool is
// saturated, which is why it runs here instead of in Submit.
func (w *Worker) dispatch() {
	defer close(w.done)

	for {
		w.mu.Lock()
		for len(w.queue) == 0 {
			if w.closed {
				w.mu.Unlock()
				w.pool.Wait()
				return
			}

			w.mu.Unlock()
			<-w.wake
			w.mu.Lock()
		}

		task := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.pool.Go(task)
	}
}

// Close cancels the context handed to tasks, lets queued tasks finish and waits for them.
// Submitting after Close yields futures failed with ErrClosed.
func (w *Worker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.signal()
	w.mu.Unlock()

	w.cancel()
	<-w.done
}

// Future is the eventual result of a submitted task.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Poll returns the result without blocking; ok is false while the task is still running.
func (f *Future[T]) Poll() (value T, err error, ok bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return value, nil, false
	}
}

// Submit queues task and returns immediately. A panicking task resolves its future with an error.
func Submit[T any](w *Worker, task func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	run := func() {
		defer close(f.done)

		var catcher panics.Catcher
		catcher.Try(func() {
			f.value, f.err = task(w.ctx)
		})

		if r := catcher.Recovered(); r != nil {
			f.err = r.AsError()
		}
	}

	if !w.enqueue(run) {
		f.err = ErrClosed
		close(f.done)
	}

	return f
}

// Resolved returns an already completed future.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}
