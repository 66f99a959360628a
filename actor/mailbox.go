package actor

import (
	"sync"
	"sync/atomic"
)

// runResult is returned by Mailbox.RunBatch to tell the dispatcher whether
// the mailbox needs to go back on the run queue.
type runResult uint8

const (
	// runIdle means both queues drained to empty and the scheduled flag
	// was cleared; the mailbox will only run again once a producer
	// observes that and re-schedules it.
	runIdle runResult = iota

	// runReschedule means at least one queue still had entries (or
	// gained one mid-drain) when the batch budget ran out; the
	// dispatcher must push the mailbox back onto the run queue.
	runReschedule
)

// defaultBatchBudget is the number of user messages drained per RunBatch
// call before a cooperative yield. It is a tunable policy knob, fixed for
// now.
const defaultBatchBudget = 32

// Mailbox is the per-cell queue pair: a FIFO of user Envelopes and a
// strictly higher-priority FIFO of SystemMessages, plus the scheduling
// bookkeeping the Dispatcher needs to know whether this mailbox is already
// queued for a worker.
//
// At most one goroutine ever calls RunBatch on a given Mailbox concurrently
// -- that exclusivity is what lets ActorCell treat its own state as
// single-threaded. Push{User,System} may be called concurrently from any
// number of goroutines.
type Mailbox struct {
	mu sync.Mutex

	userQ   []Envelope
	systemQ []SystemMessage

	// scheduled is true iff this mailbox is either currently being
	// drained by a worker or sitting in the dispatcher's run queue.
	// Producers use it to decide whether they need to hand the mailbox
	// to the dispatcher (false -> true transition) or whether a worker
	// is already going to see their message (already true).
	scheduled atomic.Bool

	// suspended is set while the cell is mid-restart; RunBatch still
	// drains system messages while suspended (Stop/Terminated must
	// never be starved), but will not hand user envelopes to the cell
	// until the cell clears suspension on its own Restart handling.
	suspended atomic.Bool

	cell *cell
}

func newMailbox(c *cell) *Mailbox {
	return &Mailbox{cell: c}
}

// PushUser appends env to the user queue. Returns true if this call
// transitioned the mailbox from idle to scheduled, meaning the caller must
// hand it to the dispatcher.
func (m *Mailbox) PushUser(env Envelope) bool {
	m.mu.Lock()
	m.userQ = append(m.userQ, env)
	m.mu.Unlock()

	return m.markScheduled()
}

// PushSystem appends msg to the system queue. Returns true under the same
// contract as PushUser.
func (m *Mailbox) PushSystem(msg SystemMessage) bool {
	m.mu.Lock()
	m.systemQ = append(m.systemQ, msg)
	m.mu.Unlock()

	return m.markScheduled()
}

// markScheduled performs the idle->scheduled CAS. Only the first caller to
// observe "was idle" gets true; every subsequent concurrent pusher (while a
// worker is already draining or about to drain) gets false and knows the
// dispatcher already owns delivery of their message.
func (m *Mailbox) markScheduled() bool {
	return m.scheduled.CompareAndSwap(false, true)
}

// RunBatch drains all pending system messages, then up to budget user
// messages, calling into c for each one. It must only be invoked by the
// single worker goroutine that currently owns this mailbox's cell.
//
// The no-lost-wakeup invariant: clearing `scheduled` and checking both
// queues for emptiness happens atomically under m.mu. A producer that
// enqueues while the lock is held will see scheduled still true (so it
// will not attempt to reschedule) and will find its message already
// counted in the emptiness check, so the mailbox is correctly kept
// scheduled instead of going idle with an unobserved message sitting in
// the queue.
func (m *Mailbox) RunBatch(c *cell, budget int) runResult {
	if budget <= 0 {
		budget = defaultBatchBudget
	}

	// System messages are unbounded per batch -- they must never be
	// starved by a flood of user traffic.
	for {
		msg, ok := m.popSystem()
		if !ok {
			break
		}
		c.receiveSystem(msg)
	}

	if !m.suspended.Load() {
		for i := 0; i < budget; i++ {
			env, ok := m.popUser()
			if !ok {
				break
			}
			c.receiveUser(env)

			// A Restart triggered by this very message may have
			// suspended the mailbox; stop pulling user envelopes
			// immediately if so.
			if m.suspended.Load() {
				break
			}
		}
	}

	return m.clearIfEmpty()
}

func (m *Mailbox) popSystem() (SystemMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.systemQ) == 0 {
		return nil, false
	}
	msg := m.systemQ[0]
	m.systemQ = m.systemQ[1:]
	return msg, true
}

func (m *Mailbox) popUser() (Envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.userQ) == 0 {
		return Envelope{}, false
	}
	env := m.userQ[0]
	m.userQ = m.userQ[1:]
	return env, true
}

func (m *Mailbox) clearIfEmpty() runResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.userQ) == 0 && len(m.systemQ) == 0 {
		m.scheduled.Store(false)
		return runIdle
	}
	return runReschedule
}

// suspend stops user-message delivery (system messages keep draining)
// until resume is called. Used while a cell is Restarting.
func (m *Mailbox) suspend() {
	m.suspended.Store(true)
}

// resume re-enables user-message delivery after a restart completes.
func (m *Mailbox) resume() {
	m.suspended.Store(false)
}

// flushUser discards every pending user envelope, routing each to dead
// letters. Used by Restart per spec's flush resolution.
func (m *Mailbox) flushUser(dlo ActorRef) {
	m.mu.Lock()
	pending := m.userQ
	m.userQ = nil
	m.mu.Unlock()

	for _, env := range pending {
		routeToDeadLetters(dlo, env)
	}
}

// isScheduled reports whether the mailbox currently believes it is queued
// or being drained. Exposed for tests and the dispatcher's bookkeeping.
func (m *Mailbox) isScheduled() bool {
	return m.scheduled.Load()
}
