// Package actorutil provides convenience wrappers over the core actor
// runtime: a round-robin router over a fixed set of sibling actors, and
// fan-out/fan-in helpers for Ask. None of it is part of the core
// supervision/mailbox/dispatcher model; it is built entirely on the public
// ActorRef/ActorSystem/Context surface.
package actorutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/roasbeef/actorcore/actor"
)

// Router distributes Tell/Ask across a fixed set of sibling ActorRefs
// using round robin, and can Broadcast to all of them at once. It wraps
// ActorRefs obtained via a real actor_of call rather than owning raw actor
// instances directly -- member lifecycle belongs to the supervision tree,
// not to the router.
type Router struct {
	id      string
	members []actor.ActorRef
	next    atomic.Uint64
}

// NewRouter builds a Router over the given, already-spawned members. The
// caller is responsible for creating them (typically via repeated
// ctx.ActorOf or system.ActorOf calls) so that each one is independently
// supervised.
func NewRouter(id string, members []actor.ActorRef) *Router {
	return &Router{id: id, members: members}
}

// ID returns the router's identifier.
func (r *Router) ID() string { return r.id }

// Size returns the number of members in the router.
func (r *Router) Size() int { return len(r.members) }

func (r *Router) pick() (actor.ActorRef, error) {
	if len(r.members) == 0 {
		return nil, fmt.Errorf("actorutil: router %q has no members", r.id)
	}
	idx := r.next.Add(1) % uint64(len(r.members))
	return r.members[idx], nil
}

// Tell sends msg to the next member in round-robin order.
func (r *Router) Tell(ctx context.Context, msg interface{}, sender actor.ActorRef) error {
	target, err := r.pick()
	if err != nil {
		return err
	}
	target.Tell(ctx, msg, sender)
	return nil
}

// Ask sends msg to the next member in round-robin order and returns its
// Future.
func (r *Router) Ask(ctx context.Context, sys *actor.ActorSystem, msg interface{}) (actor.Future[interface{}], error) {
	target, err := r.pick()
	if err != nil {
		var zero actor.Future[interface{}]
		return zero, err
	}
	return sys.Ask(ctx, target, msg), nil
}

// Broadcast sends msg to every member.
func (r *Router) Broadcast(ctx context.Context, msg interface{}, sender actor.ActorRef) {
	for _, m := range r.members {
		m.Tell(ctx, msg, sender)
	}
}

// Members returns a copy of the router's current member list.
func (r *Router) Members() []actor.ActorRef {
	out := make([]actor.ActorRef, len(r.members))
	copy(out, r.members)
	return out
}
