package actor

import "context"

// ActorRef is an opaque, shareable handle to an actor. It forwards Tell to
// the underlying cell's mailbox without exposing the cell itself, so a ref
// may be freely copied and outlive the cell it addresses -- once the cell
// is gone, Tell silently degrades to dead-letter delivery instead of
// panicking.
//
// Two refs are Equal iff their paths are equal; refs are comparable by
// path regardless of which concrete variant backs them.
type ActorRef interface {
	// Tell enqueues msg for asynchronous delivery, attributing sender as
	// the originator the receiver will see as its current sender. If
	// sender is nil, the caller is treated as coming from outside the
	// actor tree and the ref's owning system's dead-letters ref is
	// substituted. The returned bool reports whether msg actually reached
	// a live mailbox; false means it was routed to /dead_letters instead
	// (the target was already gone, or this ref is a Dead/Distant
	// placeholder), which callers like Ask use to fail fast rather than
	// wait forever on a reply that will never come.
	Tell(ctx context.Context, msg interface{}, sender ActorRef) bool

	// Path returns this actor's logical address.
	Path() Path

	// Equal reports whether other addresses the same logical actor.
	Equal(other ActorRef) bool
}

// systemTeller is implemented by refs that can additionally carry the
// high-priority SystemMessage lane -- i.e. Local refs backed by a live or
// formerly-live cell. Dead and remote-placeholder refs do not implement it.
type systemTeller interface {
	tellSystem(msg SystemMessage)
}

// terminationChecker is implemented by refs that can report, synchronously
// and without a message round trip, whether their target is already gone
// for good. Ask uses it to fail a pending promise immediately instead of
// leaving callers to wait on a reply that will never arrive.
type terminationChecker interface {
	isTerminated() bool
}

// localRef is the live, in-process variant: it holds a non-owning pointer
// to the cell. Ownership of the cell itself lives in the parent's
// children map; once the cell reaches Stopped it marks itself dead and
// this ref degrades to dead-letter routing.
type localRef struct {
	path *Path
	c    *cell
}

func newLocalRef(c *cell) ActorRef {
	p := c.path
	return &localRef{path: &p, c: c}
}

func (r *localRef) Tell(ctx context.Context, msg interface{}, sender ActorRef) bool {
	if r.path.IsDistant() {
		routeToDeadLetters(r.c.system.deadLettersRef, Envelope{Payload: msg, Sender: sender})
		return false
	}
	if sender == nil {
		sender = r.c.system.deadLettersRef
	}

	if r.c.isDead() {
		routeToDeadLetters(r.c.system.deadLettersRef, Envelope{Payload: msg, Sender: sender})
		return false
	}

	needsScheduling := r.c.mailbox.PushUser(Envelope{Payload: msg, Sender: sender})
	if needsScheduling {
		r.c.system.dispatcher.schedule(r.c.mailbox)
	}
	return true
}

// isTerminated reports whether the underlying cell has already stopped (or
// the path is a remote placeholder, which never has a live cell to begin
// with).
func (r *localRef) isTerminated() bool {
	return r.path.IsDistant() || r.c.isDead()
}

func (r *localRef) tellSystem(msg SystemMessage) {
	if r.c.isDead() {
		return
	}
	needsScheduling := r.c.mailbox.PushSystem(msg)
	if needsScheduling {
		r.c.system.dispatcher.schedule(r.c.mailbox)
	}
}

func (r *localRef) Path() Path {
	return *r.path
}

func (r *localRef) Equal(other ActorRef) bool {
	if other == nil {
		return false
	}
	return r.Path().Equal(other.Path())
}

// deadRef is the terminal variant handed back once a cell is known to be
// gone for good -- in particular, the ref Identify resolves to when a named
// child is found in its parent's registry but that child's cell has
// already stopped (a race between the registry entry and the pending
// Terminated cleanup). Tell on it always dead-letters; it carries no link
// to a cell at all, so it can keep answering Path/Equal indefinitely.
type deadRef struct {
	path Path
	dlo  ActorRef
}

// newDeadRef wraps path as a permanently-dead reference that routes every
// Tell to dlo (the owning system's dead-letters ref).
func newDeadRef(path Path, dlo ActorRef) ActorRef {
	return &deadRef{path: path, dlo: dlo}
}

func (r *deadRef) Tell(ctx context.Context, msg interface{}, sender ActorRef) bool {
	if r.dlo == nil {
		return false
	}
	routeToDeadLetters(r.dlo, Envelope{Payload: msg, Sender: sender})
	return false
}

func (r *deadRef) Path() Path { return r.path }

func (r *deadRef) Equal(other ActorRef) bool {
	if other == nil {
		return false
	}
	return r.path.Equal(other.Path())
}

// isTerminated always reports true: a deadRef never becomes live again.
func (r *deadRef) isTerminated() bool { return true }

// routeToDeadLetters forwards env to the dead-letters ref, which is always
// a localRef over a live cell for the lifetime of the ActorSystem.
func routeToDeadLetters(dlo ActorRef, env Envelope) {
	if dlo == nil {
		return
	}
	dlo.Tell(context.Background(), env, env.Sender)
}
