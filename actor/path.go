package actor

import "strings"

// Kind distinguishes a Path that addresses a cell owned by this process
// from one reserved for a future remoting scheme.
type Kind uint8

const (
	// Local paths address a cell owned by this ActorSystem.
	Local Kind = iota

	// Distant paths are a placeholder for future remoting. The runtime
	// preserves their equality and printability but never routes
	// messages to them: any Tell against a Distant-backed ref is
	// dead-lettered.
	Distant
)

// Fixed first segments reserved by every ActorSystem.
const (
	UserGuardianName  = "user"
	SystemGuardianName = "system"
	DeadLettersName   = "dead_letters"
)

// Path is an actor's immutable logical address. Two actors compare equal
// iff their paths compare equal; a child's path is always its parent's path
// with one more segment appended.
type Path struct {
	kind Kind

	// segments is the ordered sequence of names from the root to this
	// actor, e.g. []string{"user", "foo", "bar"} for "/user/foo/bar".
	segments []string

	// connInfo is opaque remoting connection info, populated only for
	// Distant paths. The core never inspects or routes on it.
	connInfo string
}

// RootPath returns the path "/", the notional root of the tree. No actor
// lives here directly; the three guardians are its immediate children.
func RootPath() Path {
	return Path{kind: Local, segments: nil}
}

// DistantPath constructs an inert, unroutable path carrying the given
// remoting connection info. The core preserves its identity and string
// form but never delivers to it.
func DistantPath(connInfo string) Path {
	return Path{kind: Distant, connInfo: connInfo}
}

// Child returns the path obtained by appending name to p. Panics if p is a
// Distant path, since Distant paths are terminal placeholders that the core
// never grows a hierarchy underneath.
func (p Path) Child(name string) Path {
	if p.kind == Distant {
		panic("actor: cannot derive a child of a Distant path")
	}

	next := make([]string, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = name

	return Path{kind: Local, segments: next}
}

// Kind reports whether this path is Local or Distant.
func (p Path) Kind() Kind {
	return p.kind
}

// IsDistant reports whether p is a remoting placeholder.
func (p Path) IsDistant() bool {
	return p.kind == Distant
}

// Segments returns the ordered name sequence from root to this actor. The
// returned slice is a copy; mutating it does not affect p.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Name returns the last segment, i.e. this actor's own name within its
// parent, or "" for the root path.
func (p Path) Name() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path one level up. Calling Parent on the root path
// returns the root path unchanged.
func (p Path) Parent() Path {
	if p.kind == Distant || len(p.segments) == 0 {
		return p
	}
	return Path{kind: Local, segments: p.segments[:len(p.segments)-1]}
}

// String renders the path as "/" + segments joined by "/". A Distant path
// renders as "distant:<connInfo>".
func (p Path) String() string {
	if p.kind == Distant {
		return "distant:" + p.connInfo
	}
	if len(p.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.segments, "/")
}

// Equal reports whether p and other address the same logical actor.
func (p Path) Equal(other Path) bool {
	if p.kind != other.kind {
		return false
	}
	if p.kind == Distant {
		return p.connInfo == other.connInfo
	}
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// ParsePath splits a "/"-prefixed, "/"-separated path string into segments,
// for use by ActorSystem.Identify. An empty or "/" string yields the root
// path.
func ParsePath(s string) Path {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return RootPath()
	}
	return Path{kind: Local, segments: strings.Split(trimmed, "/")}
}
