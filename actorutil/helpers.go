package actorutil

import (
	"context"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/roasbeef/actorcore/actor"
)

// AskAwait sends msg to ref via sys.Ask and blocks until the reply arrives
// or ctx is done, unpacking the Result into a plain (value, error) pair.
func AskAwait(
	ctx context.Context, sys *actor.ActorSystem, ref actor.ActorRef,
	msg interface{},
) (interface{}, error) {

	future := sys.Ask(ctx, ref, msg)
	return future.Await(ctx).Unpack()
}

// AskAwaitTyped is like AskAwait but additionally type-asserts the reply
// to T, returning an error if the actor replied with something else.
func AskAwaitTyped[T any](
	ctx context.Context, sys *actor.ActorSystem, ref actor.ActorRef,
	msg interface{},
) (T, error) {

	resp, err := AskAwait(ctx, sys, ref, msg)
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := resp.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf(
			"actorutil: unexpected reply type: got %T, want %T",
			resp, zero,
		)
	}
	return typed, nil
}

// TellAll sends msg to every ref in refs, fire-and-forget.
func TellAll(ctx context.Context, refs []actor.ActorRef, msg interface{}, sender actor.ActorRef) {
	for _, ref := range refs {
		ref.Tell(ctx, msg, sender)
	}
}

// ParallelAsk asks every ref in refs concurrently with the corresponding
// msgs entry and collects results in the same order.
func ParallelAsk(
	ctx context.Context, sys *actor.ActorSystem, refs []actor.ActorRef,
	msgs []interface{},
) []fn.Result[interface{}] {

	if len(refs) != len(msgs) {
		panic("actorutil: refs and msgs must have the same length")
	}

	futures := make([]actor.Future[interface{}], len(refs))
	for i, ref := range refs {
		futures[i] = sys.Ask(ctx, ref, msgs[i])
	}

	results := make([]fn.Result[interface{}], len(futures))
	for i, f := range futures {
		results[i] = f.Await(ctx)
	}
	return results
}

// FirstSuccess asks every ref in refs concurrently with the same msg and
// returns the first successful reply. If every ref fails, the last error
// observed is returned.
func FirstSuccess(
	ctx context.Context, sys *actor.ActorSystem, refs []actor.ActorRef,
	msg interface{},
) (interface{}, error) {

	if len(refs) == 0 {
		return nil, fmt.Errorf("actorutil: no actors provided")
	}

	type indexed struct {
		result fn.Result[interface{}]
	}
	resultCh := make(chan indexed, len(refs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, ref := range refs {
		go func(r actor.ActorRef) {
			res := sys.Ask(ctx, r, msg).Await(ctx)
			select {
			case resultCh <- indexed{result: res}:
			case <-ctx.Done():
			}
		}(ref)
	}

	var lastErr error
	received := 0
	for received < len(refs) {
		select {
		case res := <-resultCh:
			received++
			val, err := res.result.Unpack()
			if err == nil {
				cancel()
				return val, nil
			}
			lastErr = err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
