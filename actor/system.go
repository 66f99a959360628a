package actor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// SystemConfig tunes the runtime: a plain struct with a constructor rather
// than a config file format, since the library has no process boundary of
// its own to parse files across.
type SystemConfig struct {
	// BatchBudget is the number of user messages a single RunBatch call
	// drains before yielding. Defaults to 32.
	BatchBudget int

	// DefaultAskTimeout is recorded here but not read by Ask: an Ask's
	// wait is bounded only by the context passed to Future.Await.
	DefaultAskTimeout time.Duration
}

// DefaultConfig returns the out-of-the-box tuning: a 32-message batch
// budget and no implicit ask timeout.
func DefaultConfig() SystemConfig {
	return SystemConfig{
		BatchBudget: defaultBatchBudget,
	}
}

// SystemOption customizes SystemConfig at construction time via the usual
// functional-options pattern.
type SystemOption func(*SystemConfig)

// WithBatchBudget overrides the per-dispatch user message cap.
func WithBatchBudget(n int) SystemOption {
	return func(c *SystemConfig) { c.BatchBudget = n }
}

// WithDefaultAskTimeout sets SystemConfig.DefaultAskTimeout. Ask does not
// apply it; callers bound an Ask with the context they pass to Await.
func WithDefaultAskTimeout(d time.Duration) SystemOption {
	return func(c *SystemConfig) { c.DefaultAskTimeout = d }
}

// ActorSystem is the root of one supervision tree: it owns the dispatcher,
// the three built-in guardians (/user, /system, /dead_letters), and the
// bookkeeping identify() needs to walk the tree.
type ActorSystem struct {
	name   string
	config SystemConfig

	dispatcher *Dispatcher

	userGuardianCell   *cell
	systemGuardianCell *cell
	deadLettersCell    *cell

	userGuardianRef   ActorRef
	systemGuardianRef ActorRef
	deadLettersRef    ActorRef

	mu           sync.Mutex
	shuttingDown bool

	guardiansDone sync.WaitGroup

	deadLetterCount atomic.Uint64
}

// New constructs an ActorSystem named name with its three guardians
// Created and a Start already queued for each, but zero dispatcher workers
// -- call SpawnThreads to add capacity (the Starts are processed once
// workers run).
func New(name string, opts ...SystemOption) *ActorSystem {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sys := &ActorSystem{
		name:       name,
		config:     cfg,
		dispatcher: NewDispatcher(cfg.BatchBudget),
	}

	// The dead-letter actor is built first, with no dead-letter sink of
	// its own, since there is nothing downstream of it to forward
	// failures to.
	dlPath := RootPath().Child(DeadLettersName)
	sys.deadLettersCell = newCell(dlPath, DeadLettersName, deadLetterFactory(sys), nil, sys)
	sys.deadLettersRef = sys.deadLettersCell.selfRef

	userPath := RootPath().Child(UserGuardianName)
	sys.userGuardianCell = newCell(userPath, UserGuardianName, guardianFactory(), nil, sys)
	sys.userGuardianRef = sys.userGuardianCell.selfRef

	sysPath := RootPath().Child(SystemGuardianName)
	sys.systemGuardianCell = newCell(sysPath, SystemGuardianName, guardianFactory(), nil, sys)
	sys.systemGuardianRef = sys.systemGuardianCell.selfRef

	sys.guardiansDone.Add(2)

	for _, st := range []systemTeller{
		sys.deadLettersRef.(systemTeller),
		sys.userGuardianRef.(systemTeller),
		sys.systemGuardianRef.(systemTeller),
	} {
		st.tellSystem(Start{})
	}

	return sys
}

// SpawnThreads adds count worker goroutines to the dispatcher pool.
// Additive: calling it twice with 2 then 3 yields a 5-worker pool.
func (s *ActorSystem) SpawnThreads(count int) {
	s.dispatcher.SpawnThreads(count)
}

// UserGuardian returns the reference all top-level user actors are
// children of.
func (s *ActorSystem) UserGuardian() ActorRef { return s.userGuardianRef }

// SystemGuardian returns the reference system-created actors (notably ask
// bridges) are children of.
func (s *ActorSystem) SystemGuardian() ActorRef { return s.systemGuardianRef }

// DeadLetters returns the sink undeliverable messages are routed to.
func (s *ActorSystem) DeadLetters() ActorRef { return s.deadLettersRef }

// DeadLetterCount returns the number of messages routed to /dead_letters
// since system construction.
func (s *ActorSystem) DeadLetterCount() uint64 {
	return s.deadLetterCount.Load()
}

// ActorOf creates a top-level user actor as a child of /user. This path is
// slower than the in-Receive ActorOf form: it must itself go through the
// dispatcher (a message asking the guardian to create the child) rather
// than mutating a cell it already exclusively owns.
func (s *ActorSystem) ActorOf(factory Factory, name string) (ActorRef, error) {
	s.mu.Lock()
	down := s.shuttingDown
	s.mu.Unlock()
	if down {
		return nil, ErrShutdownInProgress
	}

	resultCh := make(chan actorOfResult, 1)

	s.userGuardianRef.Tell(context.Background(), spawnRequest{
		factory: factory,
		name:    name,
		reply:   resultCh,
	}, s.deadLettersRef)

	r := <-resultCh
	return r.ref, r.err
}

// actorOfResult is the reply payload for a top-level spawnRequest.
type actorOfResult struct {
	ref ActorRef
	err error
}

// spawnRequest is the internal message the guardian behavior understands;
// it is never exposed outside this package.
type spawnRequest struct {
	factory Factory
	name    string
	reply   chan<- actorOfResult
}

func guardianFactory() Factory {
	return func() Behavior {
		return BehaviorFunc(func(ctx Context, payload interface{}) {
			req, ok := payload.(spawnRequest)
			if !ok {
				return
			}
			ref, err := ctx.ActorOf(req.factory, req.name)
			req.reply <- actorOfResult{ref: ref, err: err}
		})
	}
}

func deadLetterFactory(sys *ActorSystem) Factory {
	return func() Behavior {
		return &deadLetterBehavior{sys: sys}
	}
}

// deadLetterBehavior absorbs undeliverable envelopes and keeps a running
// count; it never forwards anywhere, since it is itself the end of the
// line.
type deadLetterBehavior struct {
	sys *ActorSystem
}

func (b *deadLetterBehavior) Receive(ctx Context, payload interface{}) {
	env, ok := payload.(Envelope)
	if !ok {
		return
	}
	b.sys.deadLetterCount.Add(1)
	debugS(context.Background(), "dead letter", "payload", env.Payload)
}

// onCellStopped is invoked by a cell once it reaches Stopped. It is used
// only to detect guardian termination for Shutdown's join; ordinary
// children are dropped from their parent's map via Terminated handling
// alone.
func (s *ActorSystem) onCellStopped(c *cell) {
	if c == s.userGuardianCell || c == s.systemGuardianCell {
		s.guardiansDone.Done()
	}
}

// Shutdown stops both guardians, waits for them to fully terminate, then
// joins the dispatcher's worker goroutines. Once Shutdown has been called,
// further ActorOf/Ask calls return ErrShutdownInProgress rather than
// reaching the dispatcher.
func (s *ActorSystem) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.shuttingDown {
		s.mu.Unlock()
		return nil
	}
	s.shuttingDown = true
	s.mu.Unlock()

	s.userGuardianRef.(systemTeller).tellSystem(Stop{})
	s.systemGuardianRef.(systemTeller).tellSystem(Stop{})

	waitCh := make(chan struct{})
	go func() {
		s.guardiansDone.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.dispatcher.Shutdown(ctx)
}

// Identify walks the tree from the root, one hop at a time, asking each
// level's guardian/cell for a named child. Each hop is a message
// round-trip, so the whole operation is asynchronous and returns a
// Future; awaiting it blocks the calling goroutine and must never be done
// from inside a Behavior.Receive.
func (s *ActorSystem) Identify(path string) Future[fn.Option[ActorRef]] {
	promise, future := NewPromise[fn.Option[ActorRef]]()

	go func() {
		p := ParsePath(path)
		segments := p.Segments()
		if len(segments) == 0 {
			promise.Complete(fn.Ok(fn.Some[ActorRef](s.userGuardianRef)))
			return
		}

		var current ActorRef
		switch segments[0] {
		case UserGuardianName:
			current = s.userGuardianRef
		case SystemGuardianName:
			current = s.systemGuardianRef
		case DeadLettersName:
			current = s.deadLettersRef
		default:
			promise.Complete(fn.Ok(fn.None[ActorRef]()))
			return
		}

		for _, seg := range segments[1:] {
			child, found := lookupChild(current, seg)
			if !found {
				promise.Complete(fn.Ok(fn.None[ActorRef]()))
				return
			}
			current = child
		}

		promise.Complete(fn.Ok(fn.Some(current)))
	}()

	return future
}

// lookupChild asks ref's cell for its child named name via the
// high-priority system lane (lookupChildQuery), so the answer does not
// depend on the actor's user-defined Behavior understanding any particular
// message shape. Only localRefs backed by a live cell can answer.
//
// A name still present in the parent's registry can nonetheless point at a
// cell that has already stopped -- the registry entry is only cleared once
// the parent processes the child's Terminated notification, which is
// itself just another queued message. Rather than hand back a live-looking
// localRef over a dead cell, that case resolves to a deadRef: found is
// still true, but every Tell against it dead-letters immediately.
func lookupChild(ref ActorRef, name string) (ActorRef, bool) {
	lr, ok := ref.(*localRef)
	if !ok || lr.c.isDead() {
		return nil, false
	}

	replyCh := make(chan lookupChildResult, 1)
	lr.tellSystem(lookupChildQuery{name: name, reply: replyCh})

	result := <-replyCh
	if !result.found {
		return nil, false
	}

	if childLocal, ok := result.ref.(*localRef); ok && childLocal.c.isDead() {
		return newDeadRef(result.ref.Path(), childLocal.c.system.deadLettersRef), true
	}
	return result.ref, true
}
