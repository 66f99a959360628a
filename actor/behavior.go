package actor

import "github.com/lightningnetwork/lnd/fn/v2"

// Behavior is the capability every actor implements: consume one payload
// at a time, using ctx to reply, spawn children, or otherwise interact with
// the tree. Receive must not block on anything other actor-internal; long
// work belongs in a message to another actor, not an in-line wait.
//
// Errors surface by panicking (caught by the cell and reported upward as
// Failure) or by calling ctx.KillMe(); Receive itself returns nothing.
type Behavior interface {
	Receive(ctx Context, payload interface{})
}

// BehaviorFunc adapts a plain function to the Behavior interface, mirroring
// the common case of an actor with no extra methods beyond Receive.
type BehaviorFunc func(ctx Context, payload interface{})

func (f BehaviorFunc) Receive(ctx Context, payload interface{}) {
	f(ctx, payload)
}

// Factory constructs a fresh Behavior instance. The cell retains the
// factory for the lifetime of the actor so that Restart can rebuild a
// clean instance after a failure.
type Factory func() Behavior

// Context is the handle passed to Behavior.Receive, scoped to the single
// call it accompanies -- in particular Sender() is only meaningful while
// that call is executing.
type Context interface {
	// Self returns this actor's own reference.
	Self() ActorRef

	// Sender returns the ref that sent the message currently being
	// processed, or the system's dead-letters ref if the sender was
	// not meaningful.
	Sender() ActorRef

	// Parent returns this actor's parent.
	Parent() ActorRef

	// Children returns a snapshot of this actor's current children,
	// keyed by name.
	Children() map[string]ActorRef

	// Tell sends msg to target, attributing Self() as the sender.
	Tell(target ActorRef, msg interface{})

	// ActorOf creates a new child with the given name, running behavior
	// built by factory. Returns ErrNameClash if name is already in use
	// among this actor's live children.
	ActorOf(factory Factory, name string) (ActorRef, error)

	// Stop asks target to begin graceful shutdown of its subtree.
	Stop(target ActorRef)

	// KillMe stops this actor by sending Stop to its own ref, with the
	// same effect as its parent stopping it.
	KillMe()

	// Identify resolves a path string to a future optional reference.
	// Awaiting the future blocks the calling goroutine and must never
	// be done from inside Receive.
	Identify(path string) Future[fn.Option[ActorRef]]

	// Path returns this actor's own logical address.
	Path() Path
}
