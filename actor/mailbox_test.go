package actor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// These low-level tests work on a bare Mailbox with no cell behind it and
// never call RunBatch, which is exercised through real cells in
// system_test.go and dispatcher_test.go; they check the mailbox's own
// queueing and scheduling-flag invariants in isolation.
func TestMailboxPushSetsScheduledOnce(t *testing.T) {
	mb := &Mailbox{}

	needsSched := mb.PushUser(Envelope{Payload: "a"})
	require.True(t, needsSched)

	needsSched2 := mb.PushUser(Envelope{Payload: "b"})
	require.False(t, needsSched2, "second push while already scheduled must not re-trigger scheduling")

	require.True(t, mb.isScheduled())
}

func TestMailboxFIFOOrdering(t *testing.T) {
	mb := &Mailbox{}
	for i := 0; i < 100; i++ {
		mb.PushUser(Envelope{Payload: i})
	}

	for i := 0; i < 100; i++ {
		env, ok := mb.popUser()
		require.True(t, ok)
		require.Equal(t, i, env.Payload)
	}
	_, ok := mb.popUser()
	require.False(t, ok)
}

func TestMailboxSystemBypassesBudget(t *testing.T) {
	mb := &Mailbox{}
	for i := 0; i < 50; i++ {
		mb.PushSystem(Stop{})
	}
	// System messages are drained in full regardless of the user batch
	// budget; popSystem should yield exactly 50 before going empty.
	count := 0
	for {
		_, ok := mb.popSystem()
		if !ok {
			break
		}
		count++
	}
	require.Equal(t, 50, count)
}

func TestMailboxClearIfEmptyNoLostWakeup(t *testing.T) {
	mb := &Mailbox{}
	mb.PushUser(Envelope{Payload: 1})
	_, _ = mb.popUser()

	// Push from another goroutine while scheduled is still true from the
	// first push, and wait for it to finish before the emptiness check.
	// Either the pusher itself won the idle->scheduled transition (and
	// the message must still be queued for it to schedule), or it saw
	// scheduled=true and skipped scheduling, in which case clearIfEmpty
	// must find the message and keep the mailbox scheduled -- either way
	// no message is ever stuck unobserved with scheduled=false.
	var wg sync.WaitGroup
	wg.Add(1)
	var pusherSawNeedsSchedule bool
	go func() {
		defer wg.Done()
		pusherSawNeedsSchedule = mb.PushUser(Envelope{Payload: 2})
	}()
	wg.Wait()

	result := mb.clearIfEmpty()

	if pusherSawNeedsSchedule {
		// The pusher observed idle->scheduled itself; it is
		// responsible for scheduling, and clearIfEmpty's outcome
		// afterward is immaterial to correctness as long as the
		// message is still in the queue.
		env, ok := mb.popUser()
		require.True(t, ok)
		require.Equal(t, 2, env.Payload)
	} else {
		// The push happened while scheduled was already true;
		// clearIfEmpty must have observed the queue as non-empty and
		// kept scheduled=true.
		require.Equal(t, runReschedule, result)
	}
}

func TestMailboxFlushUserRoutesToDeadLetters(t *testing.T) {
	sys := New("test")
	sys.SpawnThreads(1)
	defer shutdownNow(t, sys)

	mb := &Mailbox{}
	mb.PushUser(Envelope{Payload: "x", Sender: sys.DeadLetters()})
	mb.PushUser(Envelope{Payload: "y", Sender: sys.DeadLetters()})

	before := sys.DeadLetterCount()
	mb.flushUser(sys.DeadLetters())

	require.Eventually(t, func() bool {
		return sys.DeadLetterCount() >= before+2
	}, waitFor, tick)
}
