package actorutil

import (
	"context"
	"testing"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/stretchr/testify/require"
)

func echoFactory() actor.Factory {
	return func() actor.Behavior {
		return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
			ctx.Tell(ctx.Sender(), payload)
		})
	}
}

func countingFactory(hits chan<- string) actor.Factory {
	return func() actor.Behavior {
		return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
			hits <- ctx.Path().String()
		})
	}
}

func TestRouterRoundRobinTell(t *testing.T) {
	sys := actor.New("router-sys")
	sys.SpawnThreads(2)
	defer shutdownSys(t, sys)

	hits := make(chan string, 30)
	var members []actor.ActorRef
	for i := 0; i < 3; i++ {
		ref, err := sys.ActorOf(countingFactory(hits), string(rune('a'+i)))
		require.NoError(t, err)
		members = append(members, ref)
	}

	router := NewRouter("test-router", members)
	for i := 0; i < 9; i++ {
		require.NoError(t, router.Tell(context.Background(), i, nil))
	}

	seen := map[string]int{}
	for i := 0; i < 9; i++ {
		select {
		case p := <-hits:
			seen[p]++
		case <-time.After(2 * time.Second):
			t.Fatalf("only saw %d/9 hits", i)
		}
	}
	require.Len(t, seen, 3)
	for _, count := range seen {
		require.Equal(t, 3, count)
	}
}

func TestRouterBroadcastReachesEveryMember(t *testing.T) {
	sys := actor.New("broadcast-sys")
	sys.SpawnThreads(2)
	defer shutdownSys(t, sys)

	hits := make(chan string, 10)
	var members []actor.ActorRef
	for i := 0; i < 4; i++ {
		ref, err := sys.ActorOf(countingFactory(hits), string(rune('x'+i)))
		require.NoError(t, err)
		members = append(members, ref)
	}

	router := NewRouter("broadcast-router", members)
	router.Broadcast(context.Background(), "ping", nil)

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		select {
		case p := <-hits:
			seen[p] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only saw %d/4 broadcast hits", i)
		}
	}
	require.Len(t, seen, 4)
}

func TestRouterAsk(t *testing.T) {
	sys := actor.New("router-ask-sys")
	sys.SpawnThreads(2)
	defer shutdownSys(t, sys)

	ref, err := sys.ActorOf(echoFactory(), "echo")
	require.NoError(t, err)

	router := NewRouter("ask-router", []actor.ActorRef{ref})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	future, err := router.Ask(ctx, sys, "hello")
	require.NoError(t, err)

	val, err := future.Await(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, "hello", val)
}

func shutdownSys(t *testing.T, sys *actor.ActorSystem) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sys.Shutdown(ctx))
}
