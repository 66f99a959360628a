package actor

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Future is the read side of a one-shot result that some asynchronous
// operation (Ask, Identify) will eventually produce. It is built directly
// on fn.Result[T] rather than a bespoke result type.
type Future[T any] struct {
	p *Promise[T]
}

// Promise is the write side paired with a Future. Complete may be called
// at most once; subsequent calls are no-ops, matching a one-shot ask
// reply.
type Promise[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	once     sync.Once
	result   fn.Result[T]
}

// NewPromise creates a connected Promise/Future pair.
func NewPromise[T any]() (*Promise[T], Future[T]) {
	p := &Promise[T]{done: make(chan struct{})}
	return p, Future[T]{p: p}
}

// Complete fulfills the promise with res. Only the first call has any
// effect.
func (p *Promise[T]) Complete(res fn.Result[T]) {
	p.once.Do(func() {
		p.mu.Lock()
		p.result = res
		p.mu.Unlock()
		close(p.done)
	})
}

// Await blocks until the promise is completed or ctx is done, whichever
// comes first. A context cancellation yields an error Result wrapping
// ctx.Err(), never a panic or a thrown exception.
func (f Future[T]) Await(ctx context.Context) fn.Result[T] {
	select {
	case <-f.p.done:
		f.p.mu.Lock()
		defer f.p.mu.Unlock()
		return f.p.result
	case <-ctx.Done():
		return fn.Err[T](ctx.Err())
	}
}
