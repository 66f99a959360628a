package actor

// Envelope carries one user message in flight: an opaque payload the
// receiver downcasts at runtime, plus the sender it should reply to.
// Sender is never nil: when a Tell has no meaningful originator, the
// system's dead-letters reference is used instead.
type Envelope struct {
	Payload interface{}
	Sender  ActorRef
}

// SystemMessage is the closed set of control signals a cell's system queue
// can carry. Every variant below implements this marker interface; the set
// is deliberately sealed (an unexported method) so no caller outside this
// package can synthesize its own system message and smuggle it past the
// dispatcher's priority lane.
type SystemMessage interface {
	systemMessage()
}

// Start transitions a cell from Created to Running. Delivered exactly once,
// by the parent (or the system, for a guardian), right after the cell and
// its mailbox are constructed.
type Start struct{}

func (Start) systemMessage() {}

// Restart drops the current behavior instance and rebuilds a fresh one
// from the cell's factory, flushing the pending user queue and leaving
// children untouched.
type Restart struct {
	// Reason is the failure that triggered this restart, for logging.
	Reason interface{}
}

func (Restart) systemMessage() {}

// Stop begins graceful shutdown of a cell: Stop cascades to every child,
// and the cell only reaches Stopped once all children have reported
// Terminated.
type Stop struct{}

func (Stop) systemMessage() {}

// Terminated notifies a parent or watcher that Child has fully stopped.
type Terminated struct {
	Child ActorRef
}

func (Terminated) systemMessage() {}

// Failure notifies a parent that Child's receive panicked or otherwise
// failed. The default (and currently only) supervision policy responds by
// sending Restart to Child.
type Failure struct {
	Child  ActorRef
	Reason interface{}
}

func (Failure) systemMessage() {}

// Supervise registers Child as one this cell is responsible for
// restarting on Failure. actor_of does not send it: it registers the new
// child in-line, while it owns the parent cell.
type Supervise struct {
	Child ActorRef
}

func (Supervise) systemMessage() {}

// Monitoring registers Watcher as an observer that should receive
// Terminated when this cell stops, independent of the supervision tree.
type Monitoring struct {
	Watcher ActorRef
}

func (Monitoring) systemMessage() {}

// lookupChildQuery is an internal, unexported system message used by
// Identify to ask a cell for one of its children by name without routing
// through (and without requiring support from) the cell's user-defined
// Behavior. It travels the same high-priority system lane as every other
// control signal, so a busy actor still answers it promptly.
type lookupChildQuery struct {
	name  string
	reply chan<- lookupChildResult
}

func (lookupChildQuery) systemMessage() {}

// lookupChildResult is the reply payload for lookupChildQuery.
type lookupChildResult struct {
	ref   ActorRef
	found bool
}
