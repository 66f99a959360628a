package actor

import (
	"context"
	"sync"
)

// Dispatcher multiplexes a potentially large number of per-actor mailboxes
// across a small, fixed pool of worker goroutines. A mailbox sits in
// runQueue only while it has pending work and is not currently being
// drained; workers pull from the shared queue, run one bounded batch, and
// either idle the mailbox or push it back for another pass.
type Dispatcher struct {
	mu       sync.Mutex
	cond     *sync.Cond
	runQueue []scheduledMailbox

	workers    int
	wg         sync.WaitGroup
	shutdown   bool
	batchSize  int
}

// scheduledMailbox pairs a mailbox with the cell it currently owns, since
// RunBatch needs both.
type scheduledMailbox struct {
	mailbox *Mailbox
	cell    *cell
}

// NewDispatcher creates a dispatcher with no workers running yet; call
// SpawnThreads to add capacity.
func NewDispatcher(batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = defaultBatchBudget
	}
	d := &Dispatcher{batchSize: batchSize}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// schedule pushes mb onto the run queue and wakes one worker. Called by a
// ref whenever PushUser/PushSystem reports an idle->scheduled transition.
func (d *Dispatcher) schedule(mb *Mailbox) {
	d.mu.Lock()
	if d.shutdown {
		d.mu.Unlock()
		return
	}
	d.runQueue = append(d.runQueue, scheduledMailbox{mailbox: mb, cell: mb.cell})
	d.mu.Unlock()
	d.cond.Signal()
}

// SpawnThreads adds count additional worker goroutines to the pool. Safe
// to call repeatedly; workers are purely additive.
func (d *Dispatcher) SpawnThreads(count int) {
	for i := 0; i < count; i++ {
		d.workers++
		d.wg.Add(1)
		go d.workerLoop()
	}
}

func (d *Dispatcher) workerLoop() {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		for len(d.runQueue) == 0 && !d.shutdown {
			d.cond.Wait()
		}
		if d.shutdown && len(d.runQueue) == 0 {
			d.mu.Unlock()
			return
		}
		next := d.runQueue[0]
		d.runQueue = d.runQueue[1:]
		d.mu.Unlock()

		d.runOne(next)
	}
}

// runOne executes a single bounded batch on behalf of the worker, wrapped
// in a recover() so that a defect in the dispatcher/mailbox plumbing
// itself (as opposed to a panic inside Behavior.Receive, which cell.go
// already contains) can never take down a worker goroutine.
func (d *Dispatcher) runOne(sm scheduledMailbox) {
	defer func() {
		if r := recover(); r != nil {
			errorS(context.Background(), "dispatcher worker recovered", "reason", r)
		}
	}()

	result := sm.mailbox.RunBatch(sm.cell, d.batchSize)
	if result == runReschedule {
		d.mu.Lock()
		if !d.shutdown {
			d.runQueue = append(d.runQueue, sm)
		}
		d.mu.Unlock()
		d.cond.Signal()
	}
}

// Shutdown signals every worker to exit once the run queue drains and
// blocks until they have all returned, or ctx is done first.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.shutdown = true
	d.mu.Unlock()
	d.cond.Broadcast()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pendingCount reports the number of mailboxes currently sitting in the
// run queue, for diagnostics and tests.
func (d *Dispatcher) pendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.runQueue)
}
