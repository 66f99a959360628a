package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestDispatcherReschedulesUntilIdle sends a burst far bigger than one
// RunBatch budget to a single actor and checks every message still gets
// processed -- which only happens if the dispatcher correctly requeues a
// mailbox that isn't yet empty instead of dropping it.
func TestDispatcherReschedulesUntilIdle(t *testing.T) {
	sys := New("dispatcher-sys")
	sys.SpawnThreads(1)
	defer shutdownNow(t, sys)

	const n = 200 // well above the default 32-message batch budget
	processed := make(chan struct{}, n)
	factory := func() Factory {
		return func() Behavior {
			return BehaviorFunc(func(ctx Context, payload interface{}) {
				processed <- struct{}{}
			})
		}
	}()

	ref, err := sys.ActorOf(factory, "slow")
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		ref.Tell(context.Background(), i, nil)
	}

	for i := 0; i < n; i++ {
		select {
		case <-processed:
		case <-time.After(waitFor):
			t.Fatalf("only processed %d/%d messages", i, n)
		}
	}
}

// TestDispatcherSingleWorkerNoStarvation confirms a mailbox that keeps
// getting new messages pushed to it doesn't monopolize the lone worker
// forever: a second, independently-addressed actor still gets serviced.
func TestDispatcherSingleWorkerNoStarvation(t *testing.T) {
	sys := New("fairness-sys")
	sys.SpawnThreads(1)
	defer shutdownNow(t, sys)

	chatty, err := sys.ActorOf(noopFactory(), "chatty")
	require.NoError(t, err)

	quietDone := make(chan struct{})
	quiet, err := sys.ActorOf(func() Factory {
		return func() Behavior {
			return BehaviorFunc(func(ctx Context, payload interface{}) {
				close(quietDone)
			})
		}
	}(), "quiet")
	require.NoError(t, err)

	for i := 0; i < 10_000; i++ {
		chatty.Tell(context.Background(), i, nil)
	}
	quiet.Tell(context.Background(), struct{}{}, nil)

	select {
	case <-quietDone:
	case <-time.After(waitFor):
		t.Fatal("quiet actor was starved by the chatty one")
	}
}
