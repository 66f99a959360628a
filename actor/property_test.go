package actor

import (
	"context"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyFIFOPerSenderPair checks the per-sender-pair FIFO invariant
// under an arbitrary number of messages sent by a single sender ref to a
// single receiver.
func TestPropertyFIFOPerSenderPair(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 500).Draw(rt, "n")

		sys := New("rapid-fifo")
		sys.SpawnThreads(2)

		var mu sync.Mutex
		received := make([]int, 0, n)
		done := make(chan struct{})

		factory := func() Factory {
			return func() Behavior {
				return BehaviorFunc(func(ctx Context, payload interface{}) {
					mu.Lock()
					received = append(received, payload.(int))
					count := len(received)
					mu.Unlock()
					if count == n {
						close(done)
					}
				})
			}
		}()

		ref, err := sys.ActorOf(factory, "receiver")
		if err != nil {
			rt.Fatal(err)
		}

		for i := 0; i < n; i++ {
			ref.Tell(context.Background(), i, nil)
		}

		<-done

		mu.Lock()
		defer mu.Unlock()
		for i := 0; i < n; i++ {
			if received[i] != i {
				rt.Fatalf("out of order at index %d: got %d want %d", i, received[i], i)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		if err := sys.Shutdown(ctx); err != nil {
			rt.Fatal(err)
		}
	})
}

// TestPropertyAskLaw checks that actor_of then tell(Ping) then awaiting a
// Pong yields Pong exactly once, for an arbitrary ping payload.
func TestPropertyAskLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		payload := rapid.String().Draw(rt, "payload")

		sys := New("rapid-ask")
		sys.SpawnThreads(2)

		ref, err := sys.ActorOf(echoBehaviorFactory(), "pingpong")
		if err != nil {
			rt.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), waitFor)
		result := sys.Ask(ctx, ref, payload).Await(ctx)
		cancel()

		val, err := result.Unpack()
		if err != nil {
			rt.Fatal(err)
		}
		if val.(string) != payload {
			rt.Fatalf("got %q want %q", val, payload)
		}

		shutCtx, shutCancel := context.WithTimeout(context.Background(), waitFor)
		defer shutCancel()
		if err := sys.Shutdown(shutCtx); err != nil {
			rt.Fatal(err)
		}
	})
}
