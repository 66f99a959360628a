package actorutil

import (
	"context"
	"testing"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/stretchr/testify/require"
)

func TestAskAwait(t *testing.T) {
	sys := actor.New("helpers-sys")
	sys.SpawnThreads(2)
	defer shutdownSys(t, sys)

	ref, err := sys.ActorOf(echoFactory(), "echo")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := AskAwait(ctx, sys, ref, "ping")
	require.NoError(t, err)
	require.Equal(t, "ping", val)
}

func TestAskAwaitTypedMismatch(t *testing.T) {
	sys := actor.New("helpers-typed-sys")
	sys.SpawnThreads(2)
	defer shutdownSys(t, sys)

	ref, err := sys.ActorOf(echoFactory(), "echo")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = AskAwaitTyped[int](ctx, sys, ref, "not an int")
	require.Error(t, err)
}

func TestParallelAsk(t *testing.T) {
	sys := actor.New("parallel-sys")
	sys.SpawnThreads(4)
	defer shutdownSys(t, sys)

	var refs []actor.ActorRef
	var msgs []interface{}
	for i := 0; i < 5; i++ {
		ref, err := sys.ActorOf(echoFactory(), string(rune('p'+i)))
		require.NoError(t, err)
		refs = append(refs, ref)
		msgs = append(msgs, i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	results := ParallelAsk(ctx, sys, refs, msgs)
	require.Len(t, results, 5)
	for i, r := range results {
		val, err := r.Unpack()
		require.NoError(t, err)
		require.Equal(t, i, val)
	}
}

func TestFirstSuccess(t *testing.T) {
	sys := actor.New("first-success-sys")
	sys.SpawnThreads(4)
	defer shutdownSys(t, sys)

	ref, err := sys.ActorOf(echoFactory(), "echo")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := FirstSuccess(ctx, sys, []actor.ActorRef{ref}, "winner")
	require.NoError(t, err)
	require.Equal(t, "winner", val)
}
