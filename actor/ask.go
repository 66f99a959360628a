package actor

import (
	"context"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Ask synthesizes a one-shot actor under /system, sends msg to target
// attributing that throwaway actor as sender, and returns a Future that
// completes with whatever the throwaway actor next receives. Delivery
// failure (target already gone) also completes the future, with an error.
//
// The ask actor does not time itself out: reaping a stuck ask is the
// caller's responsibility, expressed as a deadline on the ctx passed to
// Future.Await.
func (s *ActorSystem) Ask(ctx context.Context, target ActorRef, msg interface{}) Future[interface{}] {
	promise, future := NewPromise[interface{}]()

	if s.isShuttingDown() {
		promise.Complete(fn.Err[interface{}](ErrShutdownInProgress))
		return future
	}

	// Fast path: don't even bother spawning the throwaway ask actor if
	// target is already known to be gone.
	if tc, ok := target.(terminationChecker); ok && tc.isTerminated() {
		promise.Complete(fn.Err[interface{}](ErrActorTerminated))
		return future
	}

	name := "ask-" + uuid.NewString()
	askRef, err := s.spawnAskActor(name, promise)
	if err != nil {
		promise.Complete(fn.Err[interface{}](err))
		return future
	}

	if delivered := target.Tell(ctx, msg, askRef); !delivered {
		promise.Complete(fn.Err[interface{}](ErrActorTerminated))
		// target vanished between the liveness check and the send; the
		// ask actor will never get a reply, so reclaim it immediately
		// rather than leave it parked under /system forever.
		if st, ok := askRef.(systemTeller); ok {
			st.tellSystem(Stop{})
		}
		return future
	}

	return future
}

func (s *ActorSystem) isShuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuttingDown
}

// spawnAskActor creates the one-shot actor as a child of system_guardian
// by sending the guardian a spawnRequest through the dispatcher and
// waiting for its reply -- the same round trip ActorSystem.ActorOf makes
// to /user.
func (s *ActorSystem) spawnAskActor(name string, promise *Promise[interface{}]) (ActorRef, error) {
	resultCh := make(chan actorOfResult, 1)
	s.systemGuardianRef.Tell(context.Background(), spawnRequest{
		factory: askActorFactory(promise),
		name:    name,
		reply:   resultCh,
	}, s.deadLettersRef)

	r := <-resultCh
	return r.ref, r.err
}

// askActorFactory builds the throwaway Behavior: on the first message it
// receives, it completes promise with the payload and stops itself via
// ctx.KillMe.
func askActorFactory(promise *Promise[interface{}]) Factory {
	return func() Behavior {
		return BehaviorFunc(func(ctx Context, payload interface{}) {
			promise.Complete(fn.Ok(payload))
			ctx.KillMe()
		})
	}
}
