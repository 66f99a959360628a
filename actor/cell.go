package actor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// lifecycleState is the cell's position in the Created -> Running ->
// Restarting|Stopping -> Stopped state machine.
type lifecycleState uint8

const (
	stateCreated lifecycleState = iota
	stateRunning
	stateRestarting
	stateStopping
	stateStopped
)

// cell is the per-actor container: behavior, mailbox, supervision
// registries and lifecycle state. Every field below is touched only by the
// single worker goroutine that currently owns this cell's mailbox, with
// the sole exception of `stopped`, which is read by refs from arbitrary
// goroutines to decide whether to dead-letter a Tell.
type cell struct {
	path    Path
	name    string
	factory Factory

	behavior Behavior
	mailbox  *Mailbox

	system *ActorSystem
	parent ActorRef

	children    map[string]ActorRef
	monitoring  map[string]ActorRef
	monitoredBy map[string]ActorRef

	currentSender ActorRef
	state         lifecycleState

	stopped atomic.Bool

	selfRef ActorRef
}

func newCell(path Path, name string, factory Factory, parent ActorRef, sys *ActorSystem) *cell {
	c := &cell{
		path:        path,
		name:        name,
		factory:     factory,
		parent:      parent,
		system:      sys,
		children:    make(map[string]ActorRef),
		monitoring:  make(map[string]ActorRef),
		monitoredBy: make(map[string]ActorRef),
		state:       stateCreated,
	}
	c.mailbox = newMailbox(c)
	c.selfRef = newLocalRef(c)
	c.behavior = factory()
	return c
}

func (c *cell) isDead() bool {
	return c.stopped.Load()
}

// --- system message dispatch -------------------------------------------------

func (c *cell) receiveSystem(msg SystemMessage) {
	switch m := msg.(type) {
	case Start:
		c.handleStart()
	case Restart:
		c.handleRestart(m.Reason)
	case Stop:
		c.handleStop()
	case Terminated:
		c.handleTerminated(m.Child)
	case Failure:
		c.handleFailure(m.Child, m.Reason)
	case Supervise:
		c.handleSupervise(m.Child)
	case Monitoring:
		c.handleMonitoring(m.Watcher)
	case lookupChildQuery:
		c.handleLookupChild(m)
	default:
		warnS(context.Background(), "unknown system message", "path", c.path.String(), "type", fmt.Sprintf("%T", msg))
	}
}

func (c *cell) handleStart() {
	if c.state != stateCreated {
		return
	}
	c.state = stateRunning
	debugS(context.Background(), "actor started", "path", c.path.String())
}

func (c *cell) handleStop() {
	if c.state == stateStopping || c.state == stateStopped {
		return
	}
	c.state = stateStopping
	debugS(context.Background(), "actor stopping", "path", c.path.String(), "children", len(c.children))

	if len(c.children) == 0 {
		c.finalizeStop()
		return
	}
	for _, child := range c.children {
		if st, ok := child.(systemTeller); ok {
			st.tellSystem(Stop{})
		}
	}
}

func (c *cell) handleTerminated(child ActorRef) {
	for name, ref := range c.children {
		if ref.Path().Equal(child.Path()) {
			delete(c.children, name)
			break
		}
	}
	for key, ref := range c.monitoring {
		if ref.Path().Equal(child.Path()) {
			delete(c.monitoring, key)
			break
		}
	}

	if c.state == stateStopping && len(c.children) == 0 {
		c.finalizeStop()
	}
}

func (c *cell) handleFailure(child ActorRef, reason interface{}) {
	errorS(context.Background(), "child failed, restarting", "path", c.path.String(), "child", child.Path().String(), "reason", reason)
	if st, ok := child.(systemTeller); ok {
		st.tellSystem(Restart{Reason: reason})
	}
}

func (c *cell) handleRestart(reason interface{}) {
	c.mailbox.flushUser(c.system.deadLettersRef)
	c.behavior = c.factory()
	c.mailbox.resume()
	c.state = stateRunning
	infoS(context.Background(), "actor restarted", "path", c.path.String(), "reason", reason)
}

func (c *cell) handleSupervise(child ActorRef) {
	c.children[child.Path().Name()] = child
}

func (c *cell) handleMonitoring(watcher ActorRef) {
	c.monitoredBy[watcher.Path().String()] = watcher
}

func (c *cell) handleLookupChild(q lookupChildQuery) {
	child, ok := c.children[q.name]
	q.reply <- lookupChildResult{ref: child, found: ok}
}

func (c *cell) finalizeStop() {
	c.state = stateStopped
	c.stopped.Store(true)

	term := Terminated{Child: c.selfRef}
	for _, w := range c.monitoredBy {
		if st, ok := w.(systemTeller); ok {
			st.tellSystem(term)
		}
	}
	if c.parent != nil {
		if st, ok := c.parent.(systemTeller); ok {
			st.tellSystem(term)
		}
	}

	infoS(context.Background(), "actor stopped", "path", c.path.String())
	c.system.onCellStopped(c)
}

// --- user message dispatch --------------------------------------------------

func (c *cell) receiveUser(env Envelope) {
	if c.isDead() {
		routeToDeadLetters(c.system.deadLettersRef, env)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			c.currentSender = nil
			c.onFailure(r)
		}
	}()

	c.currentSender = env.Sender
	ctx := &cellContext{c: c}
	c.behavior.Receive(ctx, env.Payload)
	c.currentSender = nil
}

func (c *cell) onFailure(reason interface{}) {
	errorS(context.Background(), "receive panicked", "path", c.path.String(), "reason", reason)

	c.state = stateRestarting
	c.mailbox.suspend()

	if c.parent != nil {
		if st, ok := c.parent.(systemTeller); ok {
			st.tellSystem(Failure{Child: c.selfRef, Reason: reason})
			return
		}
	}
	// No parent able to supervise (shouldn't happen below the
	// guardians): restart immediately rather than wedge forever.
	c.handleRestart(reason)
}

// --- actor_of ----------------------------------------------------------------

func (c *cell) actorOf(factory Factory, name string) (ActorRef, error) {
	if _, exists := c.children[name]; exists {
		return nil, ErrNameClash
	}

	childPath := c.path.Child(name)
	child := newCell(childPath, name, factory, c.selfRef, c.system)

	c.children[name] = child.selfRef
	c.handleSupervise(child.selfRef)

	if st, ok := child.selfRef.(systemTeller); ok {
		st.tellSystem(Start{})
	}

	return child.selfRef, nil
}

// --- Context implementation --------------------------------------------------

// cellContext is the Context handle passed into Behavior.Receive. It is
// only valid for the duration of that single call.
type cellContext struct {
	c *cell
}

func (cc *cellContext) Self() ActorRef { return cc.c.selfRef }

func (cc *cellContext) Sender() ActorRef {
	if cc.c.currentSender == nil {
		return cc.c.system.deadLettersRef
	}
	return cc.c.currentSender
}

func (cc *cellContext) Parent() ActorRef { return cc.c.parent }

func (cc *cellContext) Children() map[string]ActorRef {
	out := make(map[string]ActorRef, len(cc.c.children))
	for k, v := range cc.c.children {
		out[k] = v
	}
	return out
}

func (cc *cellContext) Tell(target ActorRef, msg interface{}) {
	target.Tell(context.Background(), msg, cc.c.selfRef)
}

func (cc *cellContext) ActorOf(factory Factory, name string) (ActorRef, error) {
	return cc.c.actorOf(factory, name)
}

func (cc *cellContext) Stop(target ActorRef) {
	if st, ok := target.(systemTeller); ok {
		st.tellSystem(Stop{})
	}
}

func (cc *cellContext) KillMe() {
	cc.Stop(cc.c.selfRef)
}

func (cc *cellContext) Identify(path string) Future[fn.Option[ActorRef]] {
	return cc.c.system.Identify(path)
}

func (cc *cellContext) Path() Path { return cc.c.path }
